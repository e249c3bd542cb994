package ncaa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPool(entries map[string]string) map[string]poolTeam {
	pool := make(map[string]poolTeam, len(entries))
	for seoname, name := range entries {
		pool[seoname] = poolTeam{Name: name, SEOName: seoname, Sport: "basketball-men", Division: "d1"}
	}
	return pool
}

func TestMatchPoolExactSlug(t *testing.T) {
	pool := testPool(map[string]string{
		"duke":   "Duke",
		"kansas": "Kansas",
	})
	assert.Equal(t, "duke", matchPool("duke", pool))
	assert.Equal(t, "duke", matchPool("Duke!", pool))
}

func TestMatchPoolCondensedPrefix(t *testing.T) {
	pool := testPool(map[string]string{
		"kansas": "Kansas",
		"duke":   "Duke",
	})
	// "kansas jayhawks" condenses to a string prefixed by the seoname.
	assert.Equal(t, "kansas", matchPool("Kansas Jayhawks", pool))
	// Camel case splits before matching.
	assert.Equal(t, "kansas", matchPool("KansasJayhawks", pool))
}

func TestMatchPoolWordOverlapScoring(t *testing.T) {
	pool := testPool(map[string]string{
		"north-carolina": "North Carolina Tar Heels",
		"duke":           "Duke Blue Devils",
	})
	// No slug form matches, so the reordered words win on overlap alone.
	assert.Equal(t, "north-carolina", matchPool("Tar Heels North Carolina", pool))
}

func TestMatchPoolBelowThreshold(t *testing.T) {
	pool := testPool(map[string]string{
		"north-carolina": "North Carolina",
	})
	// Only one of two school words overlaps: not confident enough.
	assert.Equal(t, "", matchPool("Carolina Tar Heels", pool))
	assert.Equal(t, "", matchPool("", pool))
	assert.Equal(t, "", matchPool("!!!", pool))
}

func TestMatchPoolSciTechDisambiguation(t *testing.T) {
	pool := testPool(map[string]string{
		"missouri-science-technology": "Missouri Science and Technology",
		"duke":                        "Duke",
	})
	// An "st" word in the input routes to science-and-technology schools
	// before the general scorer sees "St" as "State".
	assert.Equal(t, "missouri-science-technology", matchPool("Missouri St", pool))
}

func TestSchoolSlugsDropsTrailingMascot(t *testing.T) {
	slugs := schoolSlugs("Georgia Bulldogs")
	assert.Equal(t, []string{"georgia", "georgiabulldogs"}, slugs)
}

func TestSchoolSlugsFusedMascotToken(t *testing.T) {
	slugs := schoolSlugs("georgiabulldogs")
	assert.Contains(t, slugs, "georgia")
	assert.Contains(t, slugs, "georgia-state")
	assert.Contains(t, slugs, "georgia-bulldogs")
}

func TestSchoolSlugsExpandsStToState(t *testing.T) {
	slugs := schoolSlugs("Texas St")
	assert.Contains(t, slugs, "texas")
	assert.Contains(t, slugs, "texas-state")
}

func TestSchoolSlugsSplitsCamelCase(t *testing.T) {
	slugs := schoolSlugs("OhioState Buckeyes")
	assert.Contains(t, slugs, "ohio-state")
	assert.Contains(t, slugs, "ohiostate")
}

func TestSchoolSlugsEmpty(t *testing.T) {
	assert.Nil(t, schoolSlugs(""))
	assert.Nil(t, schoolSlugs("   "))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "st-johns-ny", slugify("St. John's (NY)"))
	assert.Equal(t, "texas-am", slugify("Texas A&M"))
}

func TestSportFromIdentifier(t *testing.T) {
	tests := []struct {
		in    string
		sport string
		ok    bool
	}{
		{"ncaasoftball", "softball", true},
		{"NCAA-soccer-women", "soccer-women", true},
		{"ncaawomensoccer", "soccer-women", true},
		{"ncaafootball", "football", true},
		{"ncaa", "", false},
		{"nba", "", false},
		{"ncaacurling", "", false},
	}
	for _, tt := range tests {
		sport, ok := sportFromIdentifier(tt.in)
		assert.Equal(t, tt.ok, ok, "sportFromIdentifier(%q)", tt.in)
		assert.Equal(t, tt.sport, sport, "sportFromIdentifier(%q)", tt.in)
	}
}
