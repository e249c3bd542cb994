// Package catalog holds the static league table. Leagues are loaded once from
// the embedded leagues.json at process start and never mutated afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/albapepper/scoracle-teams/internal/match"
)

//go:embed leagues.json
var leaguesJSON []byte

// League is one immutable entry of the league table.
type League struct {
	Key            string             `json:"-"`
	Name           string             `json:"name"`
	ShortName      string             `json:"shortName"`
	Aliases        []string           `json:"aliases,omitempty"`
	Providers      []ProviderSelector `json:"providers,omitempty"`
	ProviderID     string             `json:"providerId,omitempty"` // legacy single-provider preference
	FeederLeagues  []string           `json:"feederLeagues,omitempty"`
	FallbackLeague string             `json:"fallbackLeague,omitempty"`
	LogoURL        string             `json:"logoUrl,omitempty"`
	LogoURLDark    string             `json:"logoUrlDark,omitempty"`
}

// DedupeKey identifies a league in visited-set tracking: lowercased short
// name, falling back to the full name.
func (l *League) DedupeKey() string {
	if l.ShortName != "" {
		return strings.ToLower(l.ShortName)
	}
	return strings.ToLower(l.Name)
}

// ProviderConfig returns the first selector config payload stored under any
// of the given keys. Providers use this to pull their own league settings,
// e.g. ProviderConfig("espn", "espnConfig").
func (l *League) ProviderConfig(keys ...string) (json.RawMessage, bool) {
	for _, sel := range l.Providers {
		for _, key := range keys {
			if raw, ok := sel.Config[key]; ok {
				return raw, true
			}
		}
	}
	return nil, false
}

// ProviderSelector is one entry of a league's ordered provider list. Two wire
// forms exist: a bare provider id string, or an object carrying an explicit
// providerId and/or provider-specific config payloads keyed by name.
type ProviderSelector struct {
	ID     string
	Config map[string]json.RawMessage
}

func (s *ProviderSelector) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		s.ID = strings.ToLower(id)
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("provider selector: %w", err)
	}
	if raw, ok := obj["providerId"]; ok {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return fmt.Errorf("provider selector providerId: %w", err)
		}
		s.ID = strings.ToLower(id)
		delete(obj, "providerId")
	}
	s.Config = obj
	return nil
}

func (s ProviderSelector) MarshalJSON() ([]byte, error) {
	if len(s.Config) == 0 {
		return json.Marshal(s.ID)
	}
	obj := make(map[string]json.RawMessage, len(s.Config)+1)
	for k, v := range s.Config {
		obj[k] = v
	}
	if s.ID != "" {
		id, _ := json.Marshal(s.ID)
		obj["providerId"] = id
	}
	return json.Marshal(obj)
}

// --------------------------------------------------------------------------
// Catalog
// --------------------------------------------------------------------------

// Catalog is the lookup table over all configured leagues.
type Catalog struct {
	leagues map[string]*League
	order   []string
}

// Load parses the embedded league table.
func Load() (*Catalog, error) {
	return Parse(leaguesJSON)
}

// Parse builds a catalog from raw JSON (key -> league record).
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]*League
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse league table: %w", err)
	}

	c := &Catalog{leagues: make(map[string]*League, len(raw))}
	for key, league := range raw {
		key = strings.ToLower(key)
		if _, dup := c.leagues[key]; dup {
			return nil, fmt.Errorf("duplicate league key %q", key)
		}
		league.Key = key
		if league.ShortName == "" {
			league.ShortName = strings.ToUpper(key)
		}
		c.leagues[key] = league
		c.order = append(c.order, key)
	}
	sort.Strings(c.order)
	return c, nil
}

// Get returns the league stored under the exact catalog key.
func (c *Catalog) Get(key string) *League {
	return c.leagues[strings.ToLower(key)]
}

// Find looks a league up by any identifier: exact short name, exact full
// name, catalog key, then normalized aliases ("N.F.C." matches "nfc").
// Returns nil when nothing matches; that is not an error at this layer.
func (c *Catalog) Find(identifier string) *League {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil
	}
	lower := strings.ToLower(identifier)

	for _, key := range c.order {
		if strings.ToLower(c.leagues[key].ShortName) == lower {
			return c.leagues[key]
		}
	}
	for _, key := range c.order {
		if strings.ToLower(c.leagues[key].Name) == lower {
			return c.leagues[key]
		}
	}
	if l, ok := c.leagues[lower]; ok {
		return l
	}

	compact := match.Compact(identifier)
	for _, key := range c.order {
		for _, alias := range c.leagues[key].Aliases {
			if match.Compact(alias) == compact {
				return c.leagues[key]
			}
		}
	}
	return nil
}

// All returns every league in stable key order.
func (c *Catalog) All() []*League {
	out := make([]*League, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.leagues[key])
	}
	return out
}

// Len reports the number of configured leagues.
func (c *Catalog) Len() int { return len(c.leagues) }
