package generator

import (
	"fmt"

	"github.com/Rana718/synthgen/internal/faker"
	"github.com/Rana718/synthgen/internal/schema"
)

// contactFunc maps contact, place and identity types onto provider calls.
func (g *Generator) contactFunc(f schema.FieldSchema) (func() any, bool) {
	p, loc := g.provider, f.Locale
	var fn func() string
	switch f.Type {
	case schema.TypeName:
		fn = func() string { return p.FullName(loc) }
	case schema.TypeEmail:
		fn = func() string { return p.Email(loc) }
	case schema.TypePhone:
		fn = func() string { return p.Phone(loc) }
	case schema.TypeAddress:
		fn = func() string { return p.Address(loc) }
	case schema.TypeCity:
		fn = func() string { return p.City(loc) }
	case schema.TypeState:
		fn = func() string { return p.State(loc) }
	case schema.TypeCountry:
		fn = p.Country
	case schema.TypeCompany:
		fn = p.Company
	case schema.TypeJobTitle:
		fn = p.JobTitle
	case schema.TypeURL:
		fn = p.URL
	case schema.TypeIPv4:
		fn = p.IPv4
	case schema.TypeColor:
		fn = p.Color
	case schema.TypeCurrency:
		fn = p.Currency
	case schema.TypeAadhaar:
		fn = g.aadhaar
	case schema.TypePAN:
		fn = g.pan
	case schema.TypePassport:
		fn = func() string { return g.passport(loc) }
	case schema.TypeVoterID:
		fn = func() string { return p.Lexify("???") + p.Numerify("#######") }
	case schema.TypeIFSC:
		fn = func() string { return faker.IFSCCode(p) }
	case schema.TypeUPI:
		fn = func() string { return faker.UPIHandle(p, loc) }
	case schema.TypeSSN:
		fn = func() string { return fmt.Sprintf("%03d-%s", p.IntBetween(1, 899), p.Numerify("##-####")) }
	default:
		return nil, false
	}
	return func() any { return fn() }, true
}

// aadhaar is 12 digits in groups of four; the first digit is 2-9.
func (g *Generator) aadhaar() string {
	p := g.provider
	return fmt.Sprintf("%d%s %s %s", p.IntBetween(2, 9), p.Numerify("###"), p.Numerify("####"), p.Numerify("####"))
}

// pan is five letters, four digits and a letter; the fourth letter is P for
// individuals.
func (g *Generator) pan() string {
	p := g.provider
	return p.Lexify("???") + "P" + p.Lexify("?") + p.Numerify("####") + p.Lexify("?")
}

func (g *Generator) passport(locale string) string {
	p := g.provider
	if locale == "" {
		locale = g.ctx.Locale
	}
	if schema.NormalizeLocale(locale) == schema.LocaleUS {
		return p.Numerify("#########")
	}
	return p.Lexify("?") + p.Numerify("#######")
}
