package schema

// GenerationHint is a closed set of structural hints for string-like fields.
// Generators dispatch on the concrete variant with a type switch.
type GenerationHint interface {
	isHint()
}

type Pattern string

const (
	PatternAPIPath          Pattern = "api_path"
	PatternVersion          Pattern = "version"
	PatternSKU              Pattern = "sku"
	PatternConnectionString Pattern = "connection_string"
	PatternJobTitle         Pattern = "job_title"
	PatternHostname         Pattern = "hostname"
	PatternFilePath         Pattern = "file_path"
	PatternHTTPMethod       Pattern = "http_method"
	PatternStatusCode       Pattern = "status_code"
)

// PatternHint asks for a domain-shaped literal such as "/api/v2/orders" or "3.4.1".
type PatternHint struct {
	Pattern Pattern
}

func (PatternHint) isHint() {}

// Capability names a fake-value provider call.
type Capability string

const (
	CapFullName  Capability = "full_name"
	CapFirstName Capability = "first_name"
	CapLastName  Capability = "last_name"
	CapEmail     Capability = "email"
	CapPhone     Capability = "phone"
	CapAddress   Capability = "address"
	CapCity      Capability = "city"
	CapState     Capability = "state"
	CapCountry   Capability = "country"
	CapCompany   Capability = "company"
	CapJobTitle  Capability = "job_title"
	CapURL       Capability = "url"
	CapIPv4      Capability = "ipv4"
	CapColor     Capability = "color"
	CapWord      Capability = "word"
	CapSentence  Capability = "sentence"
)

// ProviderHint routes a generic string field to a provider capability.
type ProviderHint struct {
	Capability Capability
}

func (ProviderHint) isHint() {}

type Charset string

const (
	CharsetAlnum   Charset = "alnum"
	CharsetDigits  Charset = "digits"
	CharsetLetters Charset = "letters"
)

// CodeHint produces Prefix + Length random characters + Suffix, e.g. "EMP-004821".
type CodeHint struct {
	Prefix  string
	Suffix  string
	Length  int
	Charset Charset
}

func (CodeHint) isHint() {}

// PhraseHint asks for a human-readable phrase of roughly Words words.
type PhraseHint struct {
	Words int
}

func (PhraseHint) isHint() {}
