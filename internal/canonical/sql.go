package canonical

import (
	"regexp"
	"strings"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/schema"
)

var (
	createTableRegex = regexp.MustCompile("(?i)CREATE\\s+TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?[\"'`]?(\\w+)[\"'`]?\\s*\\(([\\s\\S]*?)\\)\\s*;")
	fkRegex          = regexp.MustCompile("(?i)FOREIGN\\s+KEY\\s*\\([\"'`]?(\\w+)[\"'`]?\\)\\s*REFERENCES\\s+[\"'`]?(\\w+)[\"'`]?\\s*\\([\"'`]?(\\w+)[\"'`]?\\)")
	refRegex         = regexp.MustCompile("(?i)REFERENCES\\s+[\"'`]?(\\w+)[\"'`]?\\s*\\([\"'`]?(\\w+)[\"'`]?\\)")
	pkListRegex      = regexp.MustCompile("(?i)^PRIMARY\\s+KEY\\s*\\(([^)]*)\\)")
)

// InferSQL drafts a schema document from CREATE TABLE statements. Column types
// map onto field types; text columns are completed from their names.
// REFERENCES clauses become relationships.
func InferSQL(ddl string) (*schema.Document, error) {
	matches := createTableRegex.FindAllStringSubmatch(ddl, -1)
	if len(matches) == 0 {
		return nil, errors.New(errors.ErrTypeSchemaFile, "no CREATE TABLE statements found")
	}

	doc := &schema.Document{}
	for _, m := range matches {
		table, rels := parseTableDefinition(m[1], m[2])
		doc.Tables = append(doc.Tables, table)
		doc.Relationships = append(doc.Relationships, rels...)
	}
	return doc, nil
}

func parseTableDefinition(tableName, body string) (schema.TableSchema, []schema.Relationship) {
	table := schema.TableSchema{Name: tableName}
	var rels []schema.Relationship
	primary := make(map[string]bool)

	for _, line := range splitDefinitions(body) {
		lineUpper := strings.ToUpper(line)

		if fk := fkRegex.FindStringSubmatch(line); fk != nil {
			rels = append(rels, schema.Relationship{ParentTable: fk[2], ParentPKField: fk[3], ChildTable: tableName, ChildFKField: fk[1]})
			continue
		}
		if pk := pkListRegex.FindStringSubmatch(line); pk != nil {
			for _, col := range strings.Split(pk[1], ",") {
				primary[strings.ToLower(unquote(col))] = true
			}
			continue
		}

		// Skip constraint definitions
		if strings.HasPrefix(lineUpper, "UNIQUE") ||
			strings.HasPrefix(lineUpper, "CHECK") ||
			strings.HasPrefix(lineUpper, "CONSTRAINT") ||
			strings.HasPrefix(lineUpper, "INDEX") ||
			strings.HasPrefix(lineUpper, "KEY") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		f := schema.FieldSchema{
			Name:       unquote(parts[0]),
			Type:       sqlFieldType(parts[1]),
			PrimaryKey: strings.Contains(lineUpper, "PRIMARY KEY"),
		}
		if ref := refRegex.FindStringSubmatch(line); ref != nil {
			rels = append(rels, schema.Relationship{ParentTable: ref[1], ParentPKField: ref[2], ChildTable: tableName, ChildFKField: f.Name})
		}
		table.Fields = append(table.Fields, f)
	}

	for i, f := range table.Fields {
		if primary[strings.ToLower(f.Name)] {
			table.Fields[i].PrimaryKey = true
		}
		table.Fields[i] = Complete(table.Fields[i])
	}
	return table, rels
}

// splitDefinitions splits a table body on top-level commas so DECIMAL(10,2)
// stays whole.
func splitDefinitions(body string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range body {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = appendTrimmed(out, body[start:i])
				start = i + 1
			}
		}
	}
	return appendTrimmed(out, body[start:])
}

func appendTrimmed(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'`")
}

func sqlFieldType(sqlType string) schema.FieldType {
	t := strings.ToUpper(sqlType)
	if i := strings.Index(t, "("); i >= 0 {
		t = t[:i]
	}
	switch {
	case strings.Contains(t, "INT") || strings.Contains(t, "SERIAL"):
		return schema.TypeInt
	case t == "DECIMAL" || t == "NUMERIC" || t == "REAL" || strings.Contains(t, "FLOAT") || strings.Contains(t, "DOUBLE") || t == "MONEY":
		return schema.TypeFloat
	case strings.Contains(t, "BOOL") || t == "BIT":
		return schema.TypeBool
	case t == "DATE":
		return schema.TypeDate
	case strings.Contains(t, "TIMESTAMP") || t == "DATETIME":
		return schema.TypeDatetime
	case t == "UUID":
		return schema.TypeUUID
	default:
		return schema.TypeAuto
	}
}
