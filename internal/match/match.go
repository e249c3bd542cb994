// Package match provides identifier normalization and weighted team matching.
// Provider-agnostic: every provider feeds its roster through the same scoring
// so "KC", "kansas city chiefs" and "K.C. Chiefs" all land on the same team.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Candidate is the provider-neutral shape scored against user input.
type Candidate struct {
	FullName         string // "Los Angeles Lakers"
	ShortDisplayName string // "LA Lakers"
	Name             string // "Lakers"
	City             string // "Los Angeles"
	Abbreviation     string // "LAL"
}

// --------------------------------------------------------------------------
// Text normalization
// --------------------------------------------------------------------------

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripAccents(s string) string {
	out, _, err := transform.String(deaccent, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases, strips diacritics, converts punctuation to spaces,
// and collapses whitespace.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(stripAccents(s))
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Compact strips everything except lowercase alphanumerics, so "N.F.C." and
// "nfc" collide.
func Compact(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(stripAccents(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Slug converts a team name to a kebab-case slug used for override lookup.
// Punctuation is dropped rather than treated as a word boundary, so
// "Nott'm Forest" -> "nottm-forest".
func Slug(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(stripAccents(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'), r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// --------------------------------------------------------------------------
// Location abbreviations
// --------------------------------------------------------------------------

// locationAbbreviations expands common US sports city shorthand so "kc chiefs"
// matches "Kansas City Chiefs".
var locationAbbreviations = map[string][]string{
	"la":  {"los angeles", "la"},
	"ny":  {"new york", "ny"},
	"nyc": {"new york", "nyc"},
	"sf":  {"san francisco", "sf"},
	"tb":  {"tampa bay", "tb"},
	"gc":  {"golden state", "gc"},
	"gs":  {"golden state", "gs"},
	"okc": {"oklahoma city", "okc"},
	"no":  {"new orleans", "no"},
	"sa":  {"san antonio", "sa"},
	"phx": {"phoenix", "phx"},
	"por": {"portland", "por"},
	"sac": {"sacramento", "sac"},
	"min": {"minnesota", "min"},
	"nj":  {"new jersey", "nj"},
	"stl": {"st louis", "stl"},
	"kc":  {"kansas city", "kc"},
	"sd":  {"san diego", "sd"},
	"sj":  {"san jose", "sj"},
	"dc":  {"washington", "dc"},
	"chi": {"chicago", "chi"},
	"det": {"detroit", "det"},
	"atl": {"atlanta", "atl"},
	"mia": {"miami", "mia"},
	"dal": {"dallas", "dal"},
	"hou": {"houston", "hou"},
	"den": {"denver", "den"},
	"sea": {"seattle", "sea"},
}

// ExpandLocations returns every matching expansion of a leading location
// abbreviation, or the normalized input when none applies.
func ExpandLocations(input string) []string {
	normalized := Normalize(input)
	if normalized == "" {
		return []string{""}
	}
	words := strings.Fields(normalized)

	for i := min(2, len(words)); i > 0; i-- {
		abbrev := strings.Join(words[:i], "")
		expansions, ok := locationAbbreviations[abbrev]
		if !ok {
			continue
		}
		rest := strings.Join(words[i:], " ")
		out := make([]string, 0, len(expansions))
		for _, loc := range expansions {
			if rest != "" {
				out = append(out, loc+" "+rest)
			} else {
				out = append(out, loc)
			}
		}
		return out
	}

	// Compact form, e.g. "ladodgers".
	compact := Compact(input)
	for abbrev, expansions := range locationAbbreviations {
		if strings.HasPrefix(compact, abbrev) && len(compact) > len(abbrev) {
			rest := compact[len(abbrev):]
			out := make([]string, 0, len(expansions))
			for _, loc := range expansions {
				out = append(out, Compact(loc)+rest)
			}
			return out
		}
	}

	return []string{normalized}
}

// --------------------------------------------------------------------------
// Weighted scoring
// --------------------------------------------------------------------------

// Score weights: 1000 exact abbreviation, 900 nickname, 850 short display
// name, 800 full name, 700 city, 950 city+name concatenation, 100-400
// partials. 0 means no match.
const (
	// ExactAbbreviationScore is the top exact-match weight. Callers that
	// layer extra abbreviation sources over a candidate score them at this
	// weight.
	ExactAbbreviationScore = 1000

	minPartialLen = 4
)

type normalized struct {
	fullName, shortDisplay, abbrev, city, name string
	cFullName, cShortDisplay, cAbbrev, cCity, cName string
}

func normalizeCandidate(c Candidate) normalized {
	return normalized{
		fullName:      Normalize(c.FullName),
		shortDisplay:  Normalize(c.ShortDisplayName),
		abbrev:        Normalize(c.Abbreviation),
		city:          Normalize(c.City),
		name:          Normalize(c.Name),
		cFullName:     Compact(c.FullName),
		cShortDisplay: Compact(c.ShortDisplayName),
		cAbbrev:       Compact(c.Abbreviation),
		cCity:         Compact(c.City),
		cName:         Compact(c.Name),
	}
}

// Score computes the match score between user input and a candidate team.
func Score(input string, c Candidate) float64 {
	if input == "" {
		return 0
	}
	n := normalizeCandidate(c)

	var best float64
	for _, expanded := range ExpandLocations(input) {
		compact := Compact(expanded)
		best = max(best, exactScore(expanded, compact, n))
		best = max(best, concatScore(compact, c.City, n))
		best = max(best, partialScore(expanded, compact, n))
	}
	return best
}

func exactScore(input, compact string, n normalized) float64 {
	fields := []struct {
		norm, comp string
		score      float64
	}{
		{n.abbrev, n.cAbbrev, ExactAbbreviationScore},
		{n.name, n.cName, 900},
		{n.shortDisplay, n.cShortDisplay, 850},
		{n.fullName, n.cFullName, 800},
		{n.city, n.cCity, 700},
	}
	for _, f := range fields {
		if (f.norm != "" && input == f.norm) || (f.comp != "" && compact == f.comp) {
			return f.score
		}
	}
	return 0
}

// concatScore handles inputs like "losangelesclippers" where the candidate's
// city is stored abbreviated ("LA").
func concatScore(compact, city string, n normalized) float64 {
	for _, teamName := range []string{n.cShortDisplay, n.cName, n.cAbbrev} {
		if len(teamName) < minPartialLen {
			continue
		}
		if n.cCity != "" && compact == n.cCity+teamName {
			return 950
		}
		if strings.HasSuffix(compact, teamName) {
			prefix := compact[:len(compact)-len(teamName)]
			if isCityVariation(prefix, city) {
				return 950
			}
		}
	}
	return 0
}

func isCityVariation(prefix, city string) bool {
	if prefix == "" || city == "" {
		return false
	}
	cPrefix, cCity := Compact(prefix), Compact(city)
	if cPrefix == cCity {
		return true
	}
	// City names carrying a trailing "State"/"St" the input omits, e.g.
	// "colorado" against city "Colorado State".
	for _, suffix := range []string{"state", "st"} {
		stripped := strings.TrimSuffix(cCity, suffix)
		if stripped == cCity || len(stripped) < 3 {
			continue
		}
		if cPrefix == stripped || strings.HasPrefix(cPrefix, stripped) {
			return true
		}
	}
	for abbrev, expansions := range locationAbbreviations {
		matchesCity := cCity == abbrev
		for _, exp := range expansions {
			if cCity == Compact(exp) {
				matchesCity = true
			}
		}
		if !matchesCity {
			continue
		}
		if cPrefix == abbrev {
			return true
		}
		for _, exp := range expansions {
			if cPrefix == Compact(exp) {
				return true
			}
		}
	}
	return false
}

func partialScore(input, compact string, n normalized) float64 {
	var best float64

	// Nickname and short display name, guarded against trailing text so
	// "Ohio" does not match "Ohio Wesleyan Battling Bishops".
	best = max(best, substringScore(input, compact, n.name, n.cName, true))
	best = max(best, substringScore(input, compact, n.shortDisplay, n.cShortDisplay, true))

	if len(input) >= minPartialLen && n.fullName != "" && strings.Contains(n.fullName, input) {
		best = max(best, 200)
	}
	if len(compact) >= minPartialLen && n.cFullName != "" && strings.Contains(n.cFullName, compact) {
		best = max(best, 200)
	}

	if len(n.cCity) >= minPartialLen && strings.Contains(compact, n.cCity) {
		after := compact[strings.Index(compact, n.cCity)+len(n.cCity):]
		if len(after) < 3 {
			best = max(best, 100)
		}
	}
	return best
}

func substringScore(input, compact, field, compactField string, guardTrailing bool) float64 {
	var best float64
	contains := func(haystack, needle string) bool {
		if len(needle) < minPartialLen || !strings.Contains(haystack, needle) {
			return false
		}
		if guardTrailing {
			after := haystack[strings.Index(haystack, needle)+len(needle):]
			if len(after) >= 4 {
				return false
			}
		}
		return true
	}
	if contains(input, field) || contains(compact, compactField) {
		best = 400
	}
	if field != "" && len(input) >= minPartialLen && strings.Contains(field, input) {
		best = max(best, 300)
	}
	if compactField != "" && len(compact) >= minPartialLen && strings.Contains(compactField, compact) {
		best = max(best, 300)
	}
	return best
}
