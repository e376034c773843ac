// Package canonical maps display field names onto canonical fields: a default
// type, constraint, generation hint and semantic role. Matching is on whole
// words, longest key first, so "ip address" wins over "address" and
// "status code" over "status".
package canonical

import (
	"sort"
	"strings"

	"github.com/Rana718/synthgen/internal/schema"
)

// Semantic roles referenced by the dependency registry.
const (
	RoleAdmissionDate = "admission_date"
	RoleDischargeDate = "discharge_date"
	RoleStartDate     = "start_date"
	RoleEndDate       = "end_date"
	RoleOrderDate     = "order_date"
	RoleDeliveryDate  = "delivery_date"
	RoleDateOfBirth   = "date_of_birth"
	RoleFullName      = "full_name"
	RoleEmail         = "email"
	RoleCity          = "city"
	RoleState         = "state"
	RoleCountry       = "country"
	RoleCurrency      = "currency"
	RoleAge           = "age"
	RoleSalary        = "salary"
)

// Entry is one canonical field.
type Entry struct {
	Key        string
	Type       schema.FieldType
	Constraint string
	Hint       schema.GenerationHint
	Role       string
}

var entries = []Entry{
	{Key: "admission date", Type: schema.TypeDate, Role: RoleAdmissionDate},
	{Key: "date of admission", Type: schema.TypeDate, Role: RoleAdmissionDate},
	{Key: "discharge date", Type: schema.TypeDate, Role: RoleDischargeDate},
	{Key: "date of discharge", Type: schema.TypeDate, Role: RoleDischargeDate},
	{Key: "start date", Type: schema.TypeDate, Role: RoleStartDate},
	{Key: "end date", Type: schema.TypeDate, Role: RoleEndDate},
	{Key: "order date", Type: schema.TypeDate, Role: RoleOrderDate},
	{Key: "delivery date", Type: schema.TypeDate, Role: RoleDeliveryDate},
	{Key: "date of birth", Type: schema.TypeDate, Constraint: "1950-01-01 - 2005-12-31", Role: RoleDateOfBirth},
	{Key: "birth date", Type: schema.TypeDate, Constraint: "1950-01-01 - 2005-12-31", Role: RoleDateOfBirth},
	{Key: "dob", Type: schema.TypeDate, Constraint: "1950-01-01 - 2005-12-31", Role: RoleDateOfBirth},
	{Key: "date", Type: schema.TypeDate},
	{Key: "created at", Type: schema.TypeDatetime},
	{Key: "updated at", Type: schema.TypeDatetime},
	{Key: "timestamp", Type: schema.TypeDatetime},

	{Key: "email", Type: schema.TypeEmail, Role: RoleEmail},
	{Key: "email address", Type: schema.TypeEmail, Role: RoleEmail},
	{Key: "phone", Type: schema.TypePhone},
	{Key: "mobile", Type: schema.TypePhone},
	{Key: "contact number", Type: schema.TypePhone},
	{Key: "address", Type: schema.TypeAddress},
	{Key: "name", Type: schema.TypeName, Role: RoleFullName},
	{Key: "full name", Type: schema.TypeName, Role: RoleFullName},
	{Key: "first name", Type: schema.TypeString, Hint: schema.ProviderHint{Capability: schema.CapFirstName}},
	{Key: "last name", Type: schema.TypeString, Hint: schema.ProviderHint{Capability: schema.CapLastName}},
	{Key: "city", Type: schema.TypeCity, Role: RoleCity},
	{Key: "state", Type: schema.TypeState, Role: RoleState},
	{Key: "country", Type: schema.TypeCountry, Role: RoleCountry},
	{Key: "currency", Type: schema.TypeCurrency, Role: RoleCurrency},
	{Key: "company", Type: schema.TypeCompany},
	{Key: "company name", Type: schema.TypeCompany},
	{Key: "employer", Type: schema.TypeCompany},
	{Key: "organization", Type: schema.TypeCompany},
	{Key: "job title", Type: schema.TypeJobTitle},
	{Key: "designation", Type: schema.TypeJobTitle},
	{Key: "url", Type: schema.TypeURL},
	{Key: "website", Type: schema.TypeURL},
	{Key: "ip", Type: schema.TypeIPv4},
	{Key: "ip address", Type: schema.TypeIPv4},
	{Key: "color", Type: schema.TypeColor},
	{Key: "colour", Type: schema.TypeColor},

	{Key: "aadhaar", Type: schema.TypeAadhaar},
	{Key: "aadhar", Type: schema.TypeAadhaar},
	{Key: "pan", Type: schema.TypePAN},
	{Key: "passport", Type: schema.TypePassport},
	{Key: "voter id", Type: schema.TypeVoterID},
	{Key: "ifsc", Type: schema.TypeIFSC},
	{Key: "upi", Type: schema.TypeUPI},
	{Key: "upi id", Type: schema.TypeUPI},
	{Key: "ssn", Type: schema.TypeSSN},

	{Key: "age", Type: schema.TypeInt, Constraint: "18-80", Role: RoleAge},
	{Key: "salary", Type: schema.TypeFloat, Constraint: "20000-200000", Role: RoleSalary},
	{Key: "price", Type: schema.TypeFloat, Constraint: "1-10000"},
	{Key: "amount", Type: schema.TypeFloat, Constraint: "1-10000"},
	{Key: "quantity", Type: schema.TypeInt, Constraint: "1-100"},
	{Key: "qty", Type: schema.TypeInt, Constraint: "1-100"},
	{Key: "rating", Type: schema.TypeInt, Constraint: "1-5"},
	{Key: "score", Type: schema.TypeFloat, Constraint: "0-100"},
	{Key: "id", Type: schema.TypeInt, Constraint: "1-100000"},
	{Key: "uuid", Type: schema.TypeUUID},
	{Key: "guid", Type: schema.TypeUUID},
	{Key: "active", Type: schema.TypeBool},
	{Key: "is active", Type: schema.TypeBool},
	{Key: "verified", Type: schema.TypeBool},

	{Key: "status", Type: schema.TypeCategory, Constraint: "Active, Inactive, Pending"},
	{Key: "order status", Type: schema.TypeCategory, Constraint: "Pending, Shipped, Delivered, Cancelled, Returned"},
	{Key: "gender", Type: schema.TypeCategory, Constraint: "Male, Female, Other"},
	{Key: "blood group", Type: schema.TypeCategory, Constraint: "A+, A-, B+, B-, O+, O-, AB+, AB-"},
	{Key: "department", Type: schema.TypeCategory, Constraint: "Engineering, Sales, Marketing, Finance, HR, Operations"},
	{Key: "diagnosis", Type: schema.TypeCategory, Constraint: "Hypertension, Diabetes, Asthma, Fracture, Migraine, Influenza"},
	{Key: "payment method", Type: schema.TypeCategory, Constraint: "UPI, Card, Net Banking, Cash, Wallet"},

	{Key: "description", Type: schema.TypeString, Hint: schema.PhraseHint{Words: 10}},
	{Key: "comment", Type: schema.TypeString, Hint: schema.PhraseHint{Words: 8}},
	{Key: "comments", Type: schema.TypeString, Hint: schema.PhraseHint{Words: 8}},
	{Key: "notes", Type: schema.TypeString, Hint: schema.PhraseHint{Words: 8}},
	{Key: "review", Type: schema.TypeString, Hint: schema.PhraseHint{Words: 12}},
	{Key: "feedback", Type: schema.TypeString, Hint: schema.PhraseHint{Words: 12}},
	{Key: "summary", Type: schema.TypeString, Hint: schema.PhraseHint{Words: 10}},
	{Key: "title", Type: schema.TypeString, Hint: schema.PhraseHint{Words: 4}},

	{Key: "api endpoint", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternAPIPath}},
	{Key: "api path", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternAPIPath}},
	{Key: "endpoint", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternAPIPath}},
	{Key: "version", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternVersion}},
	{Key: "sku", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternSKU}},
	{Key: "product code", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternSKU}},
	{Key: "connection string", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternConnectionString}},
	{Key: "hostname", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternHostname}},
	{Key: "host", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternHostname}},
	{Key: "file path", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternFilePath}},
	{Key: "http method", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternHTTPMethod}},
	{Key: "status code", Type: schema.TypeString, Hint: schema.PatternHint{Pattern: schema.PatternStatusCode}},
	{Key: "employee id", Type: schema.TypeString, Hint: schema.CodeHint{Prefix: "EMP-", Length: 6, Charset: schema.CharsetDigits}},
	{Key: "employee code", Type: schema.TypeString, Hint: schema.CodeHint{Prefix: "EMP-", Length: 6, Charset: schema.CharsetDigits}},
	{Key: "invoice number", Type: schema.TypeString, Hint: schema.CodeHint{Prefix: "INV-", Length: 8, Charset: schema.CharsetDigits}},
}

// sorted holds entries longest key first; ties break alphabetically so
// lookups are deterministic.
var sorted = func() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].Key) != len(out[j].Key) {
			return len(out[i].Key) > len(out[j].Key)
		}
		return out[i].Key < out[j].Key
	})
	return out
}()

// Normalize lowercases a display name and turns separators into single spaces.
func Normalize(name string) string {
	replaced := strings.NewReplacer("_", " ", "-", " ", ".", " ", "/", " ").Replace(strings.ToLower(name))
	return strings.Join(strings.Fields(replaced), " ")
}

// Lookup returns the canonical entry whose key is the longest whole-word
// match within name.
func Lookup(name string) (Entry, bool) {
	padded := " " + Normalize(name) + " "
	if strings.TrimSpace(padded) == "" {
		return Entry{}, false
	}
	for _, e := range sorted {
		if strings.Contains(padded, " "+e.Key+" ") {
			return e, true
		}
	}
	return Entry{}, false
}

// Complete fills what a field leaves unspecified: the type of an auto field,
// then constraint and hint when they belong to that type, and the semantic role.
// An explicit role always wins.
func Complete(f schema.FieldSchema) schema.FieldSchema {
	e, ok := Lookup(f.Name)
	if !ok {
		if f.Type == schema.TypeAuto || f.Type == "" {
			f.Type = schema.TypeString
		}
		return f
	}
	if f.Type == schema.TypeAuto || f.Type == "" {
		f.Type = e.Type
	}
	if f.Type == e.Type {
		if strings.TrimSpace(f.Constraint) == "" {
			f.Constraint = e.Constraint
		}
		if f.Hint == nil {
			f.Hint = e.Hint
		}
	}
	if f.Role == "" {
		f.Role = e.Role
	}
	return f
}

// CompleteTables returns completed copies of tables.
func CompleteTables(tables []schema.TableSchema) []schema.TableSchema {
	out := make([]schema.TableSchema, len(tables))
	for i, t := range tables {
		fields := make([]schema.FieldSchema, len(t.Fields))
		for j, f := range t.Fields {
			fields[j] = Complete(f)
		}
		out[i] = schema.TableSchema{Name: t.Name, Fields: fields}
	}
	return out
}

// InferTable builds a table from bare column names.
func InferTable(name string, columns []string) schema.TableSchema {
	t := schema.TableSchema{Name: name}
	for _, c := range columns {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		t.Fields = append(t.Fields, Complete(schema.FieldSchema{Name: c, Type: schema.TypeAuto}))
	}
	return t
}
