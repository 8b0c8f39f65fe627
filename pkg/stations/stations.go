package stations

import (
	"strings"
)

// Station is one canonical station entry in the reference table.
type Station struct {
	Code    string
	Name    string
	Zone    string
	Aliases []string
}

// table is the fixed station reference data. Codes and names follow the
// Indian Railways conventions printed on IRCTC tickets.
var table = []Station{
	{Code: "NDLS", Name: "NEW DELHI", Zone: "NR", Aliases: []string{"DELHI", "NEW DELHI RAILWAY STATION"}},
	{Code: "DLI", Name: "DELHI JN", Zone: "NR", Aliases: []string{"OLD DELHI", "DELHI JUNCTION"}},
	{Code: "BCT", Name: "MUMBAI CENTRAL", Zone: "WR", Aliases: []string{"MUMBAI", "BOMBAY CENTRAL"}},
	{Code: "CSMT", Name: "MUMBAI CSMT", Zone: "CR", Aliases: []string{"CST", "CHHATRAPATI SHIVAJI TERMINUS"}},
	{Code: "MAS", Name: "CHENNAI CENTRAL", Zone: "SR", Aliases: []string{"CHENNAI", "MADRAS CENTRAL"}},
	{Code: "HWH", Name: "HOWRAH JN", Zone: "ER", Aliases: []string{"HOWRAH", "KOLKATA"}},
	{Code: "SBC", Name: "BANGALORE CITY", Zone: "SWR", Aliases: []string{"BANGALORE", "BENGALURU"}},
	{Code: "HYB", Name: "HYDERABAD DECCAN", Zone: "SCR", Aliases: []string{"HYDERABAD"}},
	{Code: "ADI", Name: "AHMEDABAD JN", Zone: "WR", Aliases: []string{"AHMEDABAD"}},
	{Code: "JP", Name: "JAIPUR", Zone: "NWR", Aliases: []string{"JAIPUR JN"}},
	{Code: "RTM", Name: "RATLAM JN", Zone: "WCR", Aliases: []string{"RATLAM"}},
	{Code: "BRC", Name: "VADODARA JN", Zone: "WR", Aliases: []string{"VADODARA", "BARODA"}},
	{Code: "INDB", Name: "INDORE JN", Zone: "WR", Aliases: []string{"INDORE"}},
	{Code: "PUNE", Name: "PUNE JN", Zone: "CR", Aliases: []string{"PUNE"}},
	{Code: "LKO", Name: "LUCKNOW", Zone: "NR", Aliases: []string{"LUCKNOW JN", "LUCKNOW NR"}},
	{Code: "CNB", Name: "KANPUR CENTRAL", Zone: "NCR", Aliases: []string{"KANPUR"}},
	{Code: "NZM", Name: "HAZRAT NIZAMUDDIN", Zone: "NR", Aliases: []string{"NIZAMUDDIN"}},
	{Code: "BPL", Name: "BHOPAL JN", Zone: "WCR", Aliases: []string{"BHOPAL"}},
}

// Suffix words stripped before nearby-station comparison.
var suffixWords = []string{"JN", "JUNCTION", "CENTRAL", "TERMINUS", "CANTT", "CITY"}

// aliasGroups maps every known spelling (code, name, alias) to the canonical
// station code it belongs to. Built once at init.
var aliasGroups = func() map[string]string {
	m := make(map[string]string)
	for _, s := range table {
		m[s.Code] = s.Code
		m[strings.ToUpper(s.Name)] = s.Code
		for _, a := range s.Aliases {
			m[strings.ToUpper(a)] = s.Code
		}
	}
	return m
}()

// Lookup returns the canonical station for a code, if known.
func Lookup(code string) (Station, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, s := range table {
		if s.Code == code {
			return s, true
		}
	}
	return Station{}, false
}

// Canonical maps any known spelling of a station to its canonical code.
func Canonical(name string) (string, bool) {
	code, ok := aliasGroups[strings.ToUpper(strings.TrimSpace(name))]
	return code, ok
}

// StripSuffixes removes common station suffix words (JN, JUNCTION, CENTRAL,
// TERMINUS, ...) so that "HOWRAH JN" and "HOWRAH" compare equal.
func StripSuffixes(name string) string {
	fields := strings.Fields(strings.ToUpper(strings.TrimSpace(name)))
	kept := fields[:0]
	for _, f := range fields {
		isSuffix := false
		for _, sw := range suffixWords {
			if f == sw {
				isSuffix = true
				break
			}
		}
		if !isSuffix {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// SameStation decides whether two station spellings refer to the same place.
// Exact equality gives a direct match; a shared alias group or equality after
// suffix stripping gives a nearby match.
func SameStation(a, b string) (string, bool) {
	a = strings.ToUpper(strings.TrimSpace(a))
	b = strings.ToUpper(strings.TrimSpace(b))
	if a == "" || b == "" {
		return "", false
	}
	if a == b {
		return "direct", true
	}
	ca, okA := Canonical(a)
	cb, okB := Canonical(b)
	if okA && okB && ca == cb {
		return "nearby", true
	}
	if sa, sb := StripSuffixes(a), StripSuffixes(b); sa != "" && sa == sb {
		return "nearby", true
	}
	return "", false
}

// InferCode derives a plausible station code from a station name: known
// mappings first, then initials of the first two words, then a prefix.
func InferCode(name string) string {
	clean := strings.ToUpper(strings.TrimSpace(name))
	if clean == "" {
		return ""
	}
	if code, ok := Canonical(clean); ok {
		return code
	}
	words := strings.Fields(clean)
	if len(words) >= 2 {
		code := ""
		for _, w := range words[:2] {
			if len(w) >= 2 {
				code += w[:2]
			} else {
				code += w
			}
		}
		return code
	}
	if len(words[0]) > 3 {
		return words[0][:3]
	}
	return words[0]
}
