package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/albapepper/scoracle-teams/internal/api/respond"
	"github.com/albapepper/scoracle-teams/internal/cache"
	"github.com/albapepper/scoracle-teams/internal/catalog"
	"github.com/albapepper/scoracle-teams/internal/provider"
	"github.com/albapepper/scoracle-teams/internal/resolve"
)

// leagueView is the wire shape for league listings; the catalog key is not
// serialized on the League struct itself.
type leagueView struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	ShortName      string   `json:"shortName"`
	Aliases        []string `json:"aliases,omitempty"`
	FeederLeagues  []string `json:"feederLeagues,omitempty"`
	FallbackLeague string   `json:"fallbackLeague,omitempty"`
	LogoURL        string   `json:"logoUrl,omitempty"`
}

func viewOf(l *catalog.League) leagueView {
	return leagueView{
		Key:            l.Key,
		Name:           l.Name,
		ShortName:      l.ShortName,
		Aliases:        l.Aliases,
		FeederLeagues:  l.FeederLeagues,
		FallbackLeague: l.FallbackLeague,
		LogoURL:        l.LogoURL,
	}
}

// ListLeagues returns every configured league.
// @Summary List leagues
// @Description Returns every league in the catalog with its aliases and related leagues.
// @Tags leagues
// @Produce json
// @Success 200 {array} handler.leagueView
// @Router /api/v1/leagues [get]
func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	leagues := h.catalog.All()
	views := make([]leagueView, 0, len(leagues))
	for _, l := range leagues {
		views = append(views, viewOf(l))
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"count":   len(views),
		"leagues": views,
	})
}

// GetLeague returns one league by any identifier.
// @Summary Get league
// @Description Looks a league up by key, short name, full name, or alias.
// @Tags leagues
// @Produce json
// @Param league path string true "League identifier"
// @Success 200 {object} handler.leagueView
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/leagues/{league} [get]
func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	league, ok := h.findLeague(w, r)
	if !ok {
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, viewOf(league))
}

// GetLeagueLogo returns a logo URL for a league.
// @Summary League logo URL
// @Description Returns a logo URL, preferring the dark variant when dark=true.
// @Tags leagues
// @Produce json
// @Param league path string true "League identifier"
// @Param dark query boolean false "Prefer dark-background variant"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/leagues/{league}/logo [get]
func (h *Handler) GetLeagueLogo(w http.ResponseWriter, r *http.Request) {
	league, ok := h.findLeague(w, r)
	if !ok {
		return
	}
	dark, _ := strconv.ParseBool(r.URL.Query().Get("dark"))

	url, err := h.resolver.LeagueLogoURL(r.Context(), league, dark)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusNotFound, "LOGO_NOT_FOUND",
			"No logo available for league", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"league": league.ShortName,
		"dark":   dark,
		"url":    url,
	})
}

// ResolveTeam resolves a team identifier within a league.
// @Summary Resolve team
// @Description Resolves a loosely-specified team name, abbreviation, or city to a canonical team record, traversing feeder and fallback leagues when configured.
// @Tags teams
// @Produce json
// @Param league path string true "League identifier"
// @Param team path string true "Team identifier"
// @Success 200 {object} provider.Team
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/leagues/{league}/teams/{team} [get]
func (h *Handler) ResolveTeam(w http.ResponseWriter, r *http.Request) {
	league, ok := h.findLeague(w, r)
	if !ok {
		return
	}
	identifier := chi.URLParam(r, "team")
	if identifier == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEAM", "Team identifier is required")
		return
	}

	cacheKey := "team_" + league.Key + "_" + identifier
	if cached, ok := h.cache.Get(cacheKey); ok {
		body := cached.([]byte)
		etag := cache.ComputeETag(body)
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, body, etag, cache.TTLAPIResponse, true)
		return
	}

	team, err := h.resolver.ResolveTeam(r.Context(), league, identifier)
	if err != nil {
		h.writeResolveError(w, err)
		return
	}

	body, err := json.Marshal(team)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode team")
		return
	}
	h.cache.Set(cacheKey, body, cache.TTLAPIResponse)

	etag := cache.ComputeETag(body)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, body, etag, cache.TTLAPIResponse, false)
}

func (h *Handler) writeResolveError(w http.ResponseWriter, err error) {
	var nf *provider.NotFoundError
	if errors.As(err, &nf) {
		resp := map[string]interface{}{
			"error": map[string]interface{}{
				"code":    "TEAM_NOT_FOUND",
				"message": nf.Error(),
				"team":    nf.TeamIdentifier,
				"league":  nf.League,
			},
		}
		if nf.TeamCount() > 0 {
			names := make([]string, 0, nf.TeamCount())
			for _, t := range nf.AvailableTeams {
				if label := t.Label(); label != "" {
					names = append(names, label)
				}
			}
			resp["error"].(map[string]interface{})["availableTeams"] = names
		}
		respond.WriteJSONObject(w, http.StatusNotFound, resp)
		return
	}

	var as *resolve.AlreadySearchedError
	if errors.As(err, &as) {
		respond.WriteErrorDetail(w, http.StatusUnprocessableEntity, "CIRCULAR_LEAGUES",
			"League configuration contains a circular reference", err.Error())
		return
	}

	respond.WriteErrorDetail(w, http.StatusBadGateway, "RESOLUTION_FAILED",
		"Team resolution failed", err.Error())
}

func (h *Handler) findLeague(w http.ResponseWriter, r *http.Request) (*catalog.League, bool) {
	identifier := chi.URLParam(r, "league")
	league, err := h.resolver.FindLeague(r.Context(), identifier)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusNotFound, "LEAGUE_NOT_FOUND",
			"Unknown league", err.Error())
		return nil, false
	}
	return league, true
}
