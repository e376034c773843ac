// Package faker adapts a realistic fake-value generator to the capability
// calls the value generators need. All calls are synchronous and draw from the
// provider's own seeded source, so a fixed seed replays the same values.
package faker

import (
	"fmt"
	"strings"

	"github.com/Rana718/synthgen/internal/schema"
	"github.com/brianvoe/gofakeit/v6"
)

// Provider is the fake-value capability contract.
type Provider interface {
	FullName(locale string) string
	FirstName(locale string) string
	LastName(locale string) string
	Email(locale string) string
	Phone(locale string) string
	Address(locale string) string
	City(locale string) string
	State(locale string) string
	Country() string
	Company() string
	JobTitle() string
	URL() string
	IPv4() string
	Color() string
	Currency() string
	Word() string
	Sentence(words int) string
	// Numerify replaces every '#' with a digit.
	Numerify(pattern string) string
	// Lexify replaces every '?' with an upper-case letter.
	Lexify(pattern string) string
	// Pick returns one element of values uniformly.
	Pick(values []string) string
	// IntBetween returns an int in [min, max].
	IntBetween(min, max int) int
}

// GofakeitProvider implements Provider on top of gofakeit, with Indian
// formats for the en_IN locale.
type GofakeitProvider struct {
	f      *gofakeit.Faker
	locale string
}

var _ Provider = (*GofakeitProvider)(nil)

// NewGofakeitProvider creates a provider whose output is fully determined by seed.
func NewGofakeitProvider(seed int64, locale string) *GofakeitProvider {
	if seed == 0 {
		// gofakeit treats 0 as "seed from crypto/rand".
		seed = 1
	}
	return &GofakeitProvider{
		f:      gofakeit.New(seed),
		locale: schema.NormalizeLocale(locale),
	}
}

func (p *GofakeitProvider) resolve(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return p.locale
	}
	return schema.NormalizeLocale(locale)
}

func (p *GofakeitProvider) indian(locale string) bool {
	return p.resolve(locale) == schema.LocaleIndia
}

func (p *GofakeitProvider) FirstName(locale string) string {
	if p.indian(locale) {
		return p.Pick(indianFirstNames)
	}
	return p.f.FirstName()
}

func (p *GofakeitProvider) LastName(locale string) string {
	if p.indian(locale) {
		return p.Pick(indianLastNames)
	}
	return p.f.LastName()
}

func (p *GofakeitProvider) FullName(locale string) string {
	if p.indian(locale) {
		return p.FirstName(locale) + " " + p.LastName(locale)
	}
	return p.f.Name()
}

func (p *GofakeitProvider) Email(locale string) string {
	if p.indian(locale) {
		first := strings.ToLower(p.FirstName(locale))
		last := strings.ToLower(p.LastName(locale))
		return fmt.Sprintf("%s.%s%d@%s", first, last, p.IntBetween(1, 99), p.Pick(indianMailHosts))
	}
	return p.f.Email()
}

func (p *GofakeitProvider) Phone(locale string) string {
	if p.indian(locale) {
		// Indian mobile numbers start with 6-9.
		return fmt.Sprintf("+91 %d%s", p.IntBetween(6, 9), p.Numerify("#########"))
	}
	return p.f.PhoneFormatted()
}

func (p *GofakeitProvider) Address(locale string) string {
	if p.indian(locale) {
		state := p.pickState(locale)
		city := p.Pick(state.Cities)
		return fmt.Sprintf("%d, %s, %s, %s - %d%s",
			p.IntBetween(1, 450), p.Pick(indianStreets), city, state.State, p.IntBetween(1, 8), p.Numerify("#####"))
	}
	return fmt.Sprintf("%s, %s, %s %s", p.f.Street(), p.f.City(), p.f.StateAbr(), p.f.Zip())
}

func (p *GofakeitProvider) pickState(locale string) stateCities {
	states := statesFor(p.resolve(locale))
	return states[p.IntBetween(0, len(states)-1)]
}

func (p *GofakeitProvider) City(locale string) string {
	state := p.pickState(locale)
	return p.Pick(state.Cities)
}

func (p *GofakeitProvider) State(locale string) string {
	return p.pickState(locale).State
}

func (p *GofakeitProvider) Country() string {
	return p.f.Country()
}

func (p *GofakeitProvider) Company() string {
	return p.f.Company()
}

func (p *GofakeitProvider) JobTitle() string {
	return p.f.JobTitle()
}

func (p *GofakeitProvider) URL() string {
	return p.f.URL()
}

func (p *GofakeitProvider) IPv4() string {
	return p.f.IPv4Address()
}

func (p *GofakeitProvider) Color() string {
	return p.f.Color()
}

func (p *GofakeitProvider) Currency() string {
	return p.f.CurrencyShort()
}

func (p *GofakeitProvider) Word() string {
	return p.f.Word()
}

func (p *GofakeitProvider) Sentence(words int) string {
	if words <= 0 {
		words = 6
	}
	return p.f.Sentence(words)
}

func (p *GofakeitProvider) Numerify(pattern string) string {
	return p.f.Numerify(pattern)
}

func (p *GofakeitProvider) Lexify(pattern string) string {
	return strings.ToUpper(p.f.Lexify(pattern))
}

func (p *GofakeitProvider) Pick(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[p.IntBetween(0, len(values)-1)]
}

func (p *GofakeitProvider) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return p.f.Number(min, max)
}

// UPIHandle builds a "name@bank" virtual payment address.
func UPIHandle(p Provider, locale string) string {
	return fmt.Sprintf("%s%d@%s", strings.ToLower(p.FirstName(locale)), p.IntBetween(10, 999), p.Pick(upiHandles))
}

// IFSCCode builds a bank branch code: 4 letters, a zero, 6 digits.
func IFSCCode(p Provider) string {
	return p.Pick(ifscBanks) + "0" + p.Numerify("######")
}
