package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/group-stage/models"
	"github.com/Dosada05/group-stage/services"
)

type TournamentHandler struct {
	fixtureService   services.FixtureService
	standingsService services.StandingsService
	reportService    services.ReportService
	topScorersLimit  int
}

func NewTournamentHandler(
	fs services.FixtureService,
	ss services.StandingsService,
	rs services.ReportService,
	topScorersLimit int,
) *TournamentHandler {
	return &TournamentHandler{
		fixtureService:   fs,
		standingsService: ss,
		reportService:    rs,
		topScorersLimit:  topScorersLimit,
	}
}

// CreateTournament draws the groups and regenerates the whole schedule. Previous results are lost.
func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	draw, err := h.fixtureService.CreateTournament(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"groups": map[string][]string{
			models.GroupA: teamNames(draw.GroupA),
			models.GroupB: teamNames(draw.GroupB),
		},
		"matches": draw.Matches,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Standings(w http.ResponseWriter, r *http.Request) {
	table, err := h.standingsService.Standings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) TopScorers(w http.ResponseWriter, r *http.Request) {
	limit := h.topScorersLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, errors.New("limit must be an integer"))
			return
		}
		limit = v
	}

	scorers, err := h.standingsService.TopScorers(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"top_scorers": scorers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Export(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"key": result.Key, "url": result.Location}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func teamNames(teams []models.Team) []string {
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	return names
}
