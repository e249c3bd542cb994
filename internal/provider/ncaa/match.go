package ncaa

import (
	"math"
	"regexp"
	"strings"
)

var mascotSuffixes = []string{
	"bulldogs", "bulldog", "eagles", "wildcats", "lions", "tigers",
	"panthers", "bearcats", "bears", "hawks", "knights", "raiders",
	"trojans", "spartans", "falcons", "wolves", "vikings", "rams",
	"owls", "mustangs", "cardinals", "cougars", "broncos", "chargers",
	"warriors",
}

var (
	camelBoundary   = regexp.MustCompile(`([a-z])([A-Z])`)
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	nonAlnumSpace   = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpace      = regexp.MustCompile(`\s+`)
	multiDash       = regexp.MustCompile(`-+`)
	stWord          = regexp.MustCompile(`\bst\b`)
	stateWord       = regexp.MustCompile(`\bstate\b`)
)

// splitCamel inserts spaces at camelCase boundaries so "OhioState" matches
// like "Ohio State".
func splitCamel(s string) string {
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	return acronymBoundary.ReplaceAllString(s, "$1 $2")
}

func cleanText(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

// matchPool finds the best pool seoname for a free-form identifier. Exact
// slug forms return immediately; otherwise word overlap is scored with a
// sequence bonus and a length penalty, and only confident scores match.
func matchPool(identifier string, pool map[string]poolTeam) string {
	cleanInput := cleanText(splitCamel(identifier))
	if cleanInput == "" {
		return ""
	}

	hasST := stWord.MatchString(cleanInput)
	inputWords := strings.Fields(cleanInput)
	schoolWords := inputWords
	if len(inputWords) > 2 {
		schoolWords = inputWords[:len(inputWords)-1]
	}

	// Science-and-technology schools first when the input carries "st",
	// otherwise "Texas St" style inputs drown them out.
	if hasST {
		if seoname := matchSciTech(cleanInput, schoolWords, pool); seoname != "" {
			return seoname
		}
	}

	normalizedSlug := strings.ReplaceAll(cleanInput, " ", "-")
	condensedInput := strings.ReplaceAll(cleanInput, " ", "")

	var bestMatch string
	var bestScore float64

	for seoname, team := range pool {
		cleanName := cleanText(team.Name)

		condensedSeoname := strings.ReplaceAll(seoname, "-", "")
		if normalizedSlug == seoname ||
			condensedInput == condensedSeoname ||
			strings.HasPrefix(condensedInput, condensedSeoname) {
			return seoname
		}
		if strings.Join(schoolWords, "-") == seoname {
			return seoname
		}
		if cleanInput == cleanName {
			return seoname
		}

		var score float64
		nameWords := longWords(cleanName)

		if hasST {
			if strings.Contains(cleanName, "science") && strings.Contains(cleanName, "technology") {
				score += 80
			} else if stateWord.MatchString(cleanName) {
				score -= 50
			}
		}

		matches := wordOverlap(schoolWords, nameWords)
		if len(schoolWords) > 0 && matches > 0 {
			score += float64(matches) / float64(len(schoolWords)) * 100
			for i := 0; i < len(schoolWords) && i < len(nameWords); i++ {
				if schoolWords[i] == nameWords[i] {
					score += 20
				}
			}
		}

		if math.Abs(float64(len(cleanName)-len(cleanInput))) > 20 {
			score -= 30
		}

		if score > bestScore {
			bestScore = score
			bestMatch = seoname
		}
	}

	if bestScore >= 100 {
		return bestMatch
	}
	return ""
}

func matchSciTech(cleanInput string, schoolWords []string, pool map[string]poolTeam) string {
	var best string
	var bestScore float64

	for seoname, team := range pool {
		cleanName := cleanText(team.Name)
		if !strings.Contains(cleanName, "science") || !strings.Contains(cleanName, "technology") {
			continue
		}
		nameWords := longWords(cleanName)
		matches := wordOverlap(schoolWords, nameWords)
		if matches == 0 {
			continue
		}

		score := float64(matches) / float64(len(schoolWords)) * 140
		for i := 0; i < len(schoolWords) && i < len(nameWords); i++ {
			if schoolWords[i] == nameWords[i] {
				score += 30
			}
		}
		diff := math.Abs(float64(len(cleanName) - len(cleanInput)))
		if diff > 30 {
			score -= 25
		} else if diff > 20 {
			score -= 10
		}

		if score > bestScore {
			bestScore = score
			best = seoname
		}
	}

	if bestScore >= 50 {
		return best
	}
	return ""
}

func longWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len(w) > 1 {
			out = append(out, w)
		}
	}
	return out
}

func wordOverlap(input, name []string) int {
	set := make(map[string]struct{}, len(name))
	for _, w := range name {
		set[w] = struct{}{}
	}
	count := 0
	for _, w := range input {
		if len(w) <= 1 {
			continue
		}
		if _, ok := set[w]; ok {
			count++
		}
	}
	return count
}

// schoolSlugs generates candidate seoname slugs for an identifier that the
// pool could not match, from most to least specific.
func schoolSlugs(identifier string) []string {
	words := strings.Fields(splitCamel(identifier))
	if len(words) == 0 {
		return nil
	}

	var slugs []string
	seen := make(map[string]struct{})
	add := func(slug string) {
		if slug == "" || len(slug) < 3 {
			return
		}
		if _, ok := seen[slug]; ok {
			return
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	}

	// A single token may be a school name fused with a mascot suffix.
	if len(words) == 1 {
		token := strings.ToLower(words[0])
		for _, suffix := range mascotSuffixes {
			if strings.HasSuffix(token, suffix) && len(token) > len(suffix)+2 {
				base := slugify(strings.TrimSuffix(token, suffix))
				if len(base) >= 3 {
					add(base)
					add(base + "-state")
					add(base + "-st")
					add(base + "-" + suffix)
					add(base + "-state-" + suffix)
					add(base + "-st-" + suffix)
				}
				break
			}
		}
	}

	fullText := strings.ToLower(strings.Join(words, " "))

	// Drop trailing words one at a time: the last word is usually a mascot.
	for i := len(words) - 1; i >= 1; i-- {
		add(slugify(strings.Join(words[:i], " ")))
	}

	// Condensed forms: "texasam" style seonames have no separators.
	for i := len(words); i >= 2; i-- {
		add(strings.ToLower(strings.Join(words[:i], "")))
	}

	// "St" frequently abbreviates "State" in inputs but not in seonames.
	if stWord.MatchString(fullText) || strings.Contains(fullText, "state") {
		withState := stWord.ReplaceAllString(fullText, "state")
		stateWords := strings.Fields(withState)
		for i := len(stateWords); i >= 2; i-- {
			add(slugify(strings.Join(stateWords[:i], " ")))
		}
	}

	return slugs
}

var slugStrip = regexp.MustCompile(`[^\w\s-]`)

func slugify(s string) string {
	s = strings.ToLower(s)
	s = slugStrip.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(strings.TrimSpace(s), "-")
	s = multiDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
