package privacy

import (
	"strings"

	"github.com/Rana718/synthgen/internal/schema"
)

// sensitiveKeywords covers contact details and Indian (DPDP) / US identity numbers.
var sensitiveKeywords = []string{
	"aadhaar", "aadhar", "pan", "passport", "phone", "mobile", "voter", "ifsc", "upi",
	"email", "ssn", "social security", "dob", "date of birth", "birth", "account number",
	"bank account", "credit card", "card number", "license", "licence", "address",
	"full name", "first name", "last name", "patient name", "customer name",
}

// Keywords this short match whole tokens only ("pan" must not flag "company").
const shortKeywordLen = 3

// IsSensitive flags identity/contact types and names matching the keyword set.
// The flag only selects default strategies and advisories; it never blocks
// generation.
func IsSensitive(f schema.FieldSchema) bool {
	if f.Type.IsIdentity() {
		return true
	}
	return NameLooksSensitive(f.Name)
}

func NameLooksSensitive(name string) bool {
	normalized := strings.ToLower(strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name))
	tokens := strings.Fields(normalized)
	joined := strings.Join(tokens, " ")
	for _, kw := range sensitiveKeywords {
		if len(kw) <= shortKeywordLen {
			for _, tok := range tokens {
				if tok == kw {
					return true
				}
			}
			continue
		}
		if strings.Contains(joined, kw) {
			return true
		}
	}
	return false
}

// SensitiveFields lists the sensitive field names of a table in field order.
func SensitiveFields(t schema.TableSchema) []string {
	var out []string
	for _, f := range t.Fields {
		if IsSensitive(f) {
			out = append(out, f.Name)
		}
	}
	return out
}
