package booking

import "strings"

// cityGroups maps a metro-city code to the IATA codes treated as
// interchangeable for round-trip origin/destination matching. Static data,
// never mutated at runtime.
var cityGroups = map[string][]string{
	"NYC": {"JFK", "LGA", "EWR"},
	"LON": {"LHR", "LGW", "LCY", "STN", "LTN", "SEN"},
	"PAR": {"CDG", "ORY", "BVA"},
	"TYO": {"NRT", "HND"},
	"MIL": {"MXP", "LIN", "BGY"},
	"ROM": {"FCO", "CIA"},
	"CHI": {"ORD", "MDW"},
	"WAS": {"IAD", "DCA", "BWI"},
	"SAO": {"GRU", "CGH", "VCP"},
	"RIO": {"GIG", "SDU"},
	"OSA": {"KIX", "ITM", "UKB"},
	"SEL": {"ICN", "GMP"},
	"BKK": {"BKK", "DMK"},
	"JKT": {"CGK", "HLP"},
	"MOW": {"SVO", "DME", "VKO"},
	"STO": {"ARN", "BMA", "NYO"},
	"BUE": {"EZE", "AEP"},
}

// SameCity reports whether two airports serve the same metropolitan area.
// Checks in order, first match wins: exact code, case-insensitive city name,
// shared membership in one static city group. False means "likely a different
// city", not a hard error.
func SameCity(a, b Airport) bool {
	// Empty codes come from degraded upstream data; they never match anything.
	if a.IATACode != "" && a.IATACode == b.IATACode {
		return true
	}

	if a.CityName != "" && strings.EqualFold(a.CityName, b.CityName) {
		return true
	}

	for _, codes := range cityGroups {
		if containsCode(codes, a.IATACode) && containsCode(codes, b.IATACode) {
			return true
		}
	}
	return false
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
