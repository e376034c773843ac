package schema

import (
	"strings"

	"github.com/Rana718/synthgen/internal/errors"
)

// ValidateTables checks table and field naming. Violations are configuration
// errors: rows keyed by duplicate names cannot be built.
func ValidateTables(tables []TableSchema) error {
	if len(tables) == 0 {
		return errors.New(errors.ErrTypeConfig, "no tables defined")
	}
	seenTables := make(map[string]bool, len(tables))
	for _, t := range tables {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return errors.New(errors.ErrTypeConfig, "table with empty name")
		}
		key := strings.ToLower(name)
		if seenTables[key] {
			return errors.NewConfigError("duplicate table name", name)
		}
		seenTables[key] = true

		if len(t.Fields) == 0 {
			return errors.NewConfigError("table has no fields", name)
		}
		seenFields := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			fname := strings.TrimSpace(f.Name)
			if fname == "" {
				return errors.NewConfigError("field with empty name", name)
			}
			fkey := strings.ToLower(fname)
			if seenFields[fkey] {
				return errors.NewConfigError("duplicate field name "+fname, name)
			}
			seenFields[fkey] = true
		}
	}
	return nil
}

// ValidateRelationships checks that every edge references defined tables and an
// existing parent key field. Cycles are detected by the orchestrator's sort.
func ValidateRelationships(tables []TableSchema, rels []Relationship) error {
	byName := make(map[string]TableSchema, len(tables))
	for _, t := range tables {
		byName[strings.ToLower(t.Name)] = t
	}
	for _, r := range rels {
		parent, ok := byName[strings.ToLower(r.ParentTable)]
		if !ok {
			return errors.NewConfigError("relationship "+r.String()+" references undefined parent table", r.ParentTable)
		}
		if _, ok := byName[strings.ToLower(r.ChildTable)]; !ok {
			return errors.NewConfigError("relationship "+r.String()+" references undefined child table", r.ChildTable)
		}
		if _, ok := parent.Field(r.ParentPKField); !ok {
			return errors.NewConfigError("relationship "+r.String()+" references missing parent key field", r.ParentTable)
		}
		if strings.TrimSpace(r.ChildFKField) == "" {
			return errors.NewConfigError("relationship "+r.String()+" has no child foreign key field", r.ChildTable)
		}
	}
	return nil
}
