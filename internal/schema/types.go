package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type FieldType string

const (
	TypeAuto     FieldType = "auto"
	TypeString   FieldType = "string"
	TypeInt      FieldType = "int"
	TypeFloat    FieldType = "float"
	TypeDate     FieldType = "date"
	TypeDatetime FieldType = "datetime"
	TypeBool     FieldType = "bool"
	TypeCategory FieldType = "category"
	TypeUUID     FieldType = "uuid"

	TypeEmail    FieldType = "email"
	TypePhone    FieldType = "phone"
	TypeAddress  FieldType = "address"
	TypeName     FieldType = "name"
	TypeCity     FieldType = "city"
	TypeState    FieldType = "state"
	TypeCountry  FieldType = "country"
	TypeCompany  FieldType = "company"
	TypeJobTitle FieldType = "job_title"
	TypeURL      FieldType = "url"
	TypeIPv4     FieldType = "ipv4"
	TypeColor    FieldType = "color"
	TypeCurrency FieldType = "currency"

	TypeAadhaar  FieldType = "aadhaar"
	TypePAN      FieldType = "pan"
	TypePassport FieldType = "passport"
	TypeVoterID  FieldType = "voter_id"
	TypeIFSC     FieldType = "ifsc"
	TypeUPI      FieldType = "upi"
	TypeSSN      FieldType = "ssn"
)

var fieldTypeAliases = map[string]FieldType{
	"":             TypeAuto,
	"auto":         TypeAuto,
	"string":       TypeString,
	"text":         TypeString,
	"varchar":      TypeString,
	"int":          TypeInt,
	"integer":      TypeInt,
	"float":        TypeFloat,
	"decimal":      TypeFloat,
	"number":       TypeFloat,
	"date":         TypeDate,
	"datetime":     TypeDatetime,
	"timestamp":    TypeDatetime,
	"bool":         TypeBool,
	"boolean":      TypeBool,
	"category":     TypeCategory,
	"enum":         TypeCategory,
	"uuid":         TypeUUID,
	"email":        TypeEmail,
	"phone":        TypePhone,
	"phone_number": TypePhone,
	"address":      TypeAddress,
	"name":         TypeName,
	"full_name":    TypeName,
	"city":         TypeCity,
	"state":        TypeState,
	"country":      TypeCountry,
	"company":      TypeCompany,
	"job_title":    TypeJobTitle,
	"url":          TypeURL,
	"ipv4":         TypeIPv4,
	"ip":           TypeIPv4,
	"color":        TypeColor,
	"currency":     TypeCurrency,
	"aadhaar":      TypeAadhaar,
	"pan":          TypePAN,
	"passport":     TypePassport,
	"voter_id":     TypeVoterID,
	"ifsc":         TypeIFSC,
	"upi":          TypeUPI,
	"ssn":          TypeSSN,
}

// ParseFieldType normalizes a type name. Unrecognized names are returned
// verbatim with ok=false so generation can degrade to a sentinel value.
func ParseFieldType(s string) (FieldType, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if t, ok := fieldTypeAliases[key]; ok {
		return t, true
	}
	return FieldType(key), false
}

func (t FieldType) Known() bool {
	_, ok := fieldTypeAliases[string(t)]
	return ok && t != ""
}

func (t FieldType) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

func (t FieldType) IsTemporal() bool {
	return t == TypeDate || t == TypeDatetime
}

// IsNationalID reports identifier types rendered as fixed-shape codes.
func (t FieldType) IsNationalID() bool {
	switch t {
	case TypeAadhaar, TypePAN, TypePassport, TypeVoterID, TypeIFSC, TypeSSN:
		return true
	}
	return false
}

// IsIdentity reports contact and identity types, which are always PII.
func (t FieldType) IsIdentity() bool {
	switch t {
	case TypeEmail, TypePhone, TypeAddress, TypeName, TypeUPI:
		return true
	}
	return t.IsNationalID()
}

type PIIStrategy string

const (
	PIIRealisticFake PIIStrategy = "realistic-fake"
	PIIMasked        PIIStrategy = "masked"
	PIIRedacted      PIIStrategy = "redacted"
	PIIScramble      PIIStrategy = "scramble-column"
)

func ParsePIIStrategy(s string) (PIIStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "realistic-fake", "realistic_fake", "fake", "realistic":
		return PIIRealisticFake, nil
	case "masked", "mask":
		return PIIMasked, nil
	case "redacted", "redact":
		return PIIRedacted, nil
	case "scramble-column", "scramble_column", "scramble", "scrambled":
		return PIIScramble, nil
	}
	return "", fmt.Errorf("unknown pii strategy %q", s)
}

// FieldSchema is one column definition.
type FieldSchema struct {
	Name       string
	Type       FieldType
	Constraint string
	PII        PIIStrategy
	PrimaryKey bool
	// Role is the semantic identity used for dependency lookups; it is
	// independent of the display name.
	Role   string
	Locale string
	Hint   GenerationHint
}

type TableSchema struct {
	Name   string
	Fields []FieldSchema
}

// Field finds a field by name, ignoring case.
func (t TableSchema) Field(name string) (FieldSchema, bool) {
	for _, f := range t.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return FieldSchema{}, false
}

// Relationship is a directed parent -> child edge.
type Relationship struct {
	ParentTable   string
	ParentPKField string
	ChildTable    string
	ChildFKField  string
}

func (r Relationship) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", r.ParentTable, r.ParentPKField, r.ChildTable, r.ChildFKField)
}

type Operator string

const (
	OpEq  Operator = "=="
	OpNe  Operator = "!="
	OpGt  Operator = ">"
	OpLt  Operator = "<"
	OpGte Operator = ">="
	OpLte Operator = "<="
)

func (o Operator) Valid() bool {
	switch o {
	case OpEq, OpNe, OpGt, OpLt, OpGte, OpLte:
		return true
	}
	return false
}

type Condition struct {
	Table    string
	Field    string
	Operator Operator
	Value    any
}

// ValueString renders the condition value without float noise ("75", not "75.000000").
func (c Condition) ValueString() string {
	switch v := c.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(DateLayout)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// EdgeCaseRule is an independent per-row Bernoulli trial with probability
// Percentage/100.
type EdgeCaseRule struct {
	Name       string
	Percentage float64
	Conditions []Condition
}

// GenerationContext holds the process-wide parameters of one generation run.
// It is passed by value and never mutated during generation.
type GenerationContext struct {
	DefaultPII          PIIStrategy
	FixedSeed           bool
	Seed                int64
	Locale              string
	DifferentialPrivacy bool
	Epsilon             float64
	// Now anchors default date ranges; zero means time.Now().
	Now time.Time
}

func DefaultGenerationContext() GenerationContext {
	return GenerationContext{
		DefaultPII: PIIRealisticFake,
		Locale:     LocaleIndia,
		Epsilon:    1.0,
	}
}

// RunSeed returns the seed for a run: the fixed seed in reproducible mode,
// otherwise a fresh time-based one.
func (c GenerationContext) RunSeed() int64 {
	if c.FixedSeed {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func (c GenerationContext) Today() time.Time {
	now := c.Now
	if now.IsZero() {
		now = time.Now()
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

const (
	LocaleIndia = "en_IN"
	LocaleUS    = "en_US"
)

// NormalizeLocale maps loose locale spellings onto the supported set.
func NormalizeLocale(locale string) string {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "-", "_")) {
	case "en_us", "us", "usa", "en":
		return LocaleUS
	case "en_in", "in", "india", "hi_in", "":
		return LocaleIndia
	}
	return LocaleIndia
}
