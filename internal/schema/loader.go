package schema

import (
	"os"
	"strings"

	"github.com/Rana718/synthgen/internal/errors"
	"gopkg.in/yaml.v3"
)

// Document is everything a generation run needs from a schema file.
type Document struct {
	Tables        []TableSchema
	Relationships []Relationship
	EdgeCases     []EdgeCaseRule
}

// On-disk shapes. JSON documents decode through the same YAML parser.
type documentFile struct {
	Tables        []tableFile        `yaml:"tables"`
	Relationships []relationshipFile `yaml:"relationships,omitempty"`
	EdgeCases     []edgeCaseFile     `yaml:"edge_cases,omitempty"`
}

type tableFile struct {
	Name   string      `yaml:"name"`
	Fields []fieldFile `yaml:"fields"`
}

type fieldFile struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Constraint string `yaml:"constraint,omitempty"`
	PII        string `yaml:"pii,omitempty"`
	PrimaryKey bool   `yaml:"primary_key,omitempty"`
	Role       string `yaml:"role,omitempty"`
	Locale     string `yaml:"locale,omitempty"`
	Prefix     string `yaml:"prefix,omitempty"`
	Suffix     string `yaml:"suffix,omitempty"`
	Length     int    `yaml:"length,omitempty"`
	Charset    string `yaml:"charset,omitempty"`
	Pattern    string `yaml:"pattern,omitempty"`
	Provider   string `yaml:"provider,omitempty"`
	Words      int    `yaml:"words,omitempty"`
}

type relationshipFile struct {
	ParentTable   string `yaml:"parent_table"`
	ParentPKField string `yaml:"parent_pk_field"`
	ChildTable    string `yaml:"child_table"`
	ChildFKField  string `yaml:"child_fk_field"`
}

type edgeCaseFile struct {
	Name       string          `yaml:"name"`
	Percentage float64         `yaml:"percentage"`
	Conditions []conditionFile `yaml:"conditions"`
}

type conditionFile struct {
	Table    string `yaml:"table,omitempty"`
	Field    string `yaml:"field"`
	Operator string `yaml:"operator"`
	Value    any    `yaml:"value"`
}

func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeSchemaFile, "failed to read schema file %s", path)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeSchemaFile, "failed to parse schema file %s", path)
	}
	return doc, nil
}

func Parse(data []byte) (*Document, error) {
	var raw documentFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	doc := &Document{}
	for _, t := range raw.Tables {
		table := TableSchema{Name: strings.TrimSpace(t.Name)}
		for _, f := range t.Fields {
			field, err := f.toField()
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrTypeSchemaFile, "table %s field %s", t.Name, f.Name)
			}
			table.Fields = append(table.Fields, field)
		}
		doc.Tables = append(doc.Tables, table)
	}

	for _, r := range raw.Relationships {
		doc.Relationships = append(doc.Relationships, Relationship{
			ParentTable:   strings.TrimSpace(r.ParentTable),
			ParentPKField: strings.TrimSpace(r.ParentPKField),
			ChildTable:    strings.TrimSpace(r.ChildTable),
			ChildFKField:  strings.TrimSpace(r.ChildFKField),
		})
	}

	for i, e := range raw.EdgeCases {
		if e.Percentage < 0 || e.Percentage > 100 {
			return nil, errors.Newf(errors.ErrTypeSchemaFile, "edge case %d: percentage %.2f outside 0-100", i, e.Percentage)
		}
		rule := EdgeCaseRule{Name: e.Name, Percentage: e.Percentage}
		for _, c := range e.Conditions {
			op := Operator(strings.TrimSpace(c.Operator))
			if op == "" || op == "=" {
				op = OpEq
			}
			if !op.Valid() {
				return nil, errors.Newf(errors.ErrTypeSchemaFile, "edge case %d: unsupported operator %q", i, c.Operator)
			}
			rule.Conditions = append(rule.Conditions, Condition{
				Table:    strings.TrimSpace(c.Table),
				Field:    strings.TrimSpace(c.Field),
				Operator: op,
				Value:    c.Value,
			})
		}
		doc.EdgeCases = append(doc.EdgeCases, rule)
	}

	return doc, nil
}

func (f fieldFile) toField() (FieldSchema, error) {
	typ, _ := ParseFieldType(f.Type)
	pii, err := ParsePIIStrategy(f.PII)
	if err != nil {
		return FieldSchema{}, err
	}
	return FieldSchema{
		Name:       strings.TrimSpace(f.Name),
		Type:       typ,
		Constraint: f.Constraint,
		PII:        pii,
		PrimaryKey: f.PrimaryKey,
		Role:       strings.ToLower(strings.TrimSpace(f.Role)),
		Locale:     f.Locale,
		Hint:       f.hint(),
	}, nil
}

func (f fieldFile) hint() GenerationHint {
	switch {
	case f.Pattern != "":
		return PatternHint{Pattern: Pattern(strings.ToLower(f.Pattern))}
	case f.Provider != "":
		return ProviderHint{Capability: Capability(strings.ToLower(f.Provider))}
	case f.Length > 0 || f.Prefix != "" || f.Suffix != "":
		charset := Charset(strings.ToLower(f.Charset))
		if charset == "" {
			charset = CharsetAlnum
		}
		return CodeHint{Prefix: f.Prefix, Suffix: f.Suffix, Length: f.Length, Charset: charset}
	case f.Words > 0:
		return PhraseHint{Words: f.Words}
	}
	return nil
}

// Marshal renders tables back into the document format.
func Marshal(doc *Document) ([]byte, error) {
	var raw documentFile
	for _, t := range doc.Tables {
		tf := tableFile{Name: t.Name}
		for _, f := range t.Fields {
			tf.Fields = append(tf.Fields, fromField(f))
		}
		raw.Tables = append(raw.Tables, tf)
	}
	for _, r := range doc.Relationships {
		raw.Relationships = append(raw.Relationships, relationshipFile(r))
	}
	for _, e := range doc.EdgeCases {
		ef := edgeCaseFile{Name: e.Name, Percentage: e.Percentage}
		for _, c := range e.Conditions {
			ef.Conditions = append(ef.Conditions, conditionFile{Table: c.Table, Field: c.Field, Operator: string(c.Operator), Value: c.Value})
		}
		raw.EdgeCases = append(raw.EdgeCases, ef)
	}
	return yaml.Marshal(raw)
}

func fromField(f FieldSchema) fieldFile {
	out := fieldFile{
		Name:       f.Name,
		Type:       string(f.Type),
		Constraint: f.Constraint,
		PII:        string(f.PII),
		PrimaryKey: f.PrimaryKey,
		Role:       f.Role,
		Locale:     f.Locale,
	}
	switch h := f.Hint.(type) {
	case PatternHint:
		out.Pattern = string(h.Pattern)
	case ProviderHint:
		out.Provider = string(h.Capability)
	case CodeHint:
		out.Prefix, out.Suffix, out.Length, out.Charset = h.Prefix, h.Suffix, h.Length, string(h.Charset)
	case PhraseHint:
		out.Words = h.Words
	}
	return out
}
