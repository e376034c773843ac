package faker

import (
	"strings"

	"github.com/Rana718/synthgen/internal/schema"
)

type stateCities struct {
	State  string
	Cities []string
}

var indianStates = []stateCities{
	{"Maharashtra", []string{"Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad"}},
	{"Karnataka", []string{"Bengaluru", "Mysuru", "Mangaluru", "Hubballi"}},
	{"Tamil Nadu", []string{"Chennai", "Coimbatore", "Madurai", "Tiruchirappalli"}},
	{"Delhi", []string{"New Delhi", "Dwarka", "Rohini"}},
	{"Uttar Pradesh", []string{"Lucknow", "Kanpur", "Varanasi", "Agra", "Noida"}},
	{"West Bengal", []string{"Kolkata", "Howrah", "Durgapur", "Siliguri"}},
	{"Gujarat", []string{"Ahmedabad", "Surat", "Vadodara", "Rajkot"}},
	{"Rajasthan", []string{"Jaipur", "Jodhpur", "Udaipur", "Kota"}},
	{"Telangana", []string{"Hyderabad", "Warangal", "Nizamabad"}},
	{"Kerala", []string{"Thiruvananthapuram", "Kochi", "Kozhikode"}},
}

var usStates = []stateCities{
	{"California", []string{"Los Angeles", "San Francisco", "San Diego", "Sacramento"}},
	{"Texas", []string{"Houston", "Austin", "Dallas", "San Antonio"}},
	{"New York", []string{"New York City", "Buffalo", "Rochester", "Albany"}},
	{"Florida", []string{"Miami", "Orlando", "Tampa", "Jacksonville"}},
	{"Illinois", []string{"Chicago", "Springfield", "Naperville"}},
	{"Washington", []string{"Seattle", "Spokane", "Tacoma"}},
}

type countryCurrency struct {
	Country  string
	Currency string
}

var countryCurrencies = []countryCurrency{
	{"India", "INR"},
	{"United States", "USD"},
	{"United States of America", "USD"},
	{"USA", "USD"},
	{"United Kingdom", "GBP"},
	{"Germany", "EUR"},
	{"France", "EUR"},
	{"Italy", "EUR"},
	{"Spain", "EUR"},
	{"Japan", "JPY"},
	{"China", "CNY"},
	{"Canada", "CAD"},
	{"Australia", "AUD"},
	{"Singapore", "SGD"},
	{"United Arab Emirates", "AED"},
	{"Brazil", "BRL"},
	{"Switzerland", "CHF"},
}

var (
	indianFirstNames = []string{"Aarav", "Vivaan", "Aditya", "Arjun", "Rohan", "Ishaan", "Ananya", "Diya", "Priya", "Kavya", "Meera", "Saanvi", "Neha", "Rahul", "Vikram", "Pooja"}
	indianLastNames  = []string{"Sharma", "Verma", "Patel", "Iyer", "Reddy", "Nair", "Gupta", "Singh", "Das", "Mehta", "Joshi", "Kulkarni", "Banerjee", "Chopra"}
	indianMailHosts  = []string{"gmail.com", "yahoo.co.in", "outlook.com", "rediffmail.com"}
	usMailHosts      = []string{"gmail.com", "yahoo.com", "outlook.com", "icloud.com"}
	indianStreets    = []string{"MG Road", "Station Road", "Gandhi Nagar", "Nehru Marg", "Park Street", "Lake View Road", "Shivaji Nagar", "Ring Road"}
	upiHandles       = []string{"okaxis", "oksbi", "okhdfcbank", "okicici", "ybl", "paytm"}
	ifscBanks        = []string{"SBIN", "HDFC", "ICIC", "UTIB", "KKBK", "PUNB", "BARB"}
)

// CitiesForState returns the known cities of a state, matched case-insensitively.
func CitiesForState(state string) ([]string, bool) {
	for _, group := range [][]stateCities{indianStates, usStates} {
		for _, s := range group {
			if strings.EqualFold(s.State, strings.TrimSpace(state)) {
				return s.Cities, true
			}
		}
	}
	return nil, false
}

// CurrencyForCountry returns the ISO currency code of a country.
func CurrencyForCountry(country string) (string, bool) {
	for _, c := range countryCurrencies {
		if strings.EqualFold(c.Country, strings.TrimSpace(country)) {
			return c.Currency, true
		}
	}
	return "", false
}

// MailHosts lists common mail domains for a locale.
func MailHosts(locale string) []string {
	if schema.NormalizeLocale(locale) == schema.LocaleUS {
		return usMailHosts
	}
	return indianMailHosts
}

func statesFor(locale string) []stateCities {
	if schema.NormalizeLocale(locale) == schema.LocaleUS {
		return usStates
	}
	return indianStates
}
