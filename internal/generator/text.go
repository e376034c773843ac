package generator

import (
	"fmt"
	"strings"

	"github.com/Rana718/synthgen/internal/canonical"
	"github.com/Rana718/synthgen/internal/schema"
)

var (
	apiResources = []string{"users", "orders", "products", "payments", "invoices", "customers", "sessions", "reports"}
	connSchemes  = []string{"postgres", "mysql", "mongodb", "redis"}
	connPorts    = map[string]int{"postgres": 5432, "mysql": 3306, "mongodb": 27017, "redis": 6379}
	hostEnvs     = []string{"prod", "staging", "dev", "qa"}
	fileDirs     = []string{"/var/data", "/opt/app", "/home/deploy", "/srv/files", "/tmp"}
	fileExts     = []string{"csv", "json", "log", "txt", "pdf", "xml"}
	httpMethods  = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}
	statusCodes  = []string{"200", "201", "204", "301", "400", "401", "403", "404", "409", "500", "502", "503"}

	phraseTokens = map[string]bool{
		"description": true, "notes": true, "note": true, "comment": true, "comments": true,
		"remarks": true, "summary": true, "message": true, "text": true, "review": true,
		"feedback": true, "bio": true, "about": true, "details": true, "reason": true,
	}
	codeTokens = map[string]bool{
		"code": true, "id": true, "number": true, "no": true, "num": true, "ref": true,
		"reference": true, "key": true, "token": true, "serial": true, "tag": true,
	}
)

const (
	alnumChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	letterChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
)

func (g *Generator) text(f schema.FieldSchema) string {
	switch h := f.Hint.(type) {
	case schema.PatternHint:
		return g.pattern(h.Pattern)
	case schema.ProviderHint:
		return g.capability(h.Capability, f.Locale)
	case schema.CodeHint:
		return g.code(h)
	case schema.PhraseHint:
		words := h.Words
		if words <= 0 {
			words = 6
		}
		return g.provider.Sentence(words)
	}

	phrase, code := false, false
	for _, tok := range strings.Fields(canonical.Normalize(f.Name)) {
		phrase = phrase || phraseTokens[tok]
		code = code || codeTokens[tok]
	}
	switch {
	case phrase:
		return g.provider.Sentence(6 + g.rng.Intn(5))
	case code:
		return g.provider.Lexify("???") + "-" + g.provider.Numerify("#####")
	}
	return capitalize(g.provider.Word())
}

func (g *Generator) pattern(p schema.Pattern) string {
	pr := g.provider
	switch p {
	case schema.PatternAPIPath:
		path := fmt.Sprintf("/api/v%d/%s", 1+g.rng.Intn(3), g.pick(apiResources))
		if g.rng.Intn(2) == 0 {
			path += fmt.Sprintf("/%d", 1+g.rng.Intn(9999))
		}
		return path
	case schema.PatternVersion:
		return fmt.Sprintf("%d.%d.%d", g.rng.Intn(6), g.rng.Intn(21), g.rng.Intn(51))
	case schema.PatternSKU:
		return pr.Lexify("???") + "-" + pr.Numerify("#####")
	case schema.PatternConnectionString:
		scheme := g.pick(connSchemes)
		return fmt.Sprintf("%s://%s:****@%s-db.internal:%d/%s",
			scheme, strings.ToLower(pr.Word()), g.pick(hostEnvs), connPorts[scheme], strings.ToLower(pr.Word()))
	case schema.PatternJobTitle:
		return pr.JobTitle()
	case schema.PatternHostname:
		return fmt.Sprintf("%s-%s-%02d.internal", strings.ToLower(pr.Word()), g.pick(hostEnvs), 1+g.rng.Intn(20))
	case schema.PatternFilePath:
		return fmt.Sprintf("%s/%s/%s.%s", g.pick(fileDirs), strings.ToLower(pr.Word()), strings.ToLower(pr.Word()), g.pick(fileExts))
	case schema.PatternHTTPMethod:
		return g.pick(httpMethods)
	case schema.PatternStatusCode:
		return g.pick(statusCodes)
	}
	return pr.Word()
}

func (g *Generator) capability(c schema.Capability, locale string) string {
	p := g.provider
	switch c {
	case schema.CapFullName:
		return p.FullName(locale)
	case schema.CapFirstName:
		return p.FirstName(locale)
	case schema.CapLastName:
		return p.LastName(locale)
	case schema.CapEmail:
		return p.Email(locale)
	case schema.CapPhone:
		return p.Phone(locale)
	case schema.CapAddress:
		return p.Address(locale)
	case schema.CapCity:
		return p.City(locale)
	case schema.CapState:
		return p.State(locale)
	case schema.CapCountry:
		return p.Country()
	case schema.CapCompany:
		return p.Company()
	case schema.CapJobTitle:
		return p.JobTitle()
	case schema.CapURL:
		return p.URL()
	case schema.CapIPv4:
		return p.IPv4()
	case schema.CapColor:
		return p.Color()
	case schema.CapSentence:
		return p.Sentence(8)
	}
	return p.Word()
}

func (g *Generator) code(h schema.CodeHint) string {
	n := h.Length
	if n <= 0 {
		n = 8
	}
	chars := alnumChars
	switch h.Charset {
	case schema.CharsetDigits:
		chars = digitChars
	case schema.CharsetLetters:
		chars = letterChars
	}
	var b strings.Builder
	b.WriteString(h.Prefix)
	for i := 0; i < n; i++ {
		b.WriteByte(chars[g.rng.Intn(len(chars))])
	}
	b.WriteString(h.Suffix)
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
