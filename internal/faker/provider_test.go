package faker

import (
	"regexp"
	"strings"
	"testing"

	"github.com/Rana718/synthgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededProviderIsDeterministic(t *testing.T) {
	a := NewGofakeitProvider(7, schema.LocaleUS)
	b := NewGofakeitProvider(7, schema.LocaleUS)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.FullName(""), b.FullName(""))
		assert.Equal(t, a.Email(""), b.Email(""))
		assert.Equal(t, a.Company(), b.Company())
		assert.Equal(t, a.Sentence(4), b.Sentence(4))
	}
}

func TestIndianFormats(t *testing.T) {
	p := NewGofakeitProvider(11, schema.LocaleIndia)
	phoneRe := regexp.MustCompile(`^\+91 [6-9]\d{9}$`)
	pinRe := regexp.MustCompile(` - [1-8]\d{5}$`)

	for i := 0; i < 50; i++ {
		assert.Regexp(t, phoneRe, p.Phone(""))
		assert.Regexp(t, pinRe, p.Address(""))

		state := p.State("")
		_, ok := CitiesForState(state)
		assert.True(t, ok, "state %q should be in the lookup table", state)
	}
}

func TestLocaleOverridePerCall(t *testing.T) {
	p := NewGofakeitProvider(3, schema.LocaleIndia)
	assert.False(t, strings.HasPrefix(p.Phone(schema.LocaleUS), "+91"))
	assert.True(t, strings.HasPrefix(p.Phone(""), "+91"))
}

func TestHelpers(t *testing.T) {
	p := NewGofakeitProvider(5, schema.LocaleIndia)

	assert.Regexp(t, `^[A-Z]{4}0\d{6}$`, IFSCCode(p))
	assert.Regexp(t, `^[a-z]+\d+@[a-z]+$`, UPIHandle(p, ""))
	assert.Regexp(t, `^[A-Z]{3}$`, p.Lexify("???"))
	assert.Regexp(t, `^\d{4}$`, p.Numerify("####"))
	assert.Equal(t, 4, p.IntBetween(4, 4))
	assert.Equal(t, "", p.Pick(nil))

	cities, ok := CitiesForState("karnataka")
	require.True(t, ok)
	assert.Contains(t, cities, "Bengaluru")

	cur, ok := CurrencyForCountry("India")
	assert.True(t, ok)
	assert.Equal(t, "INR", cur)
	_, ok = CurrencyForCountry("Atlantis")
	assert.False(t, ok)
}
