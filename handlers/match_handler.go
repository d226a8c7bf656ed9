package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dosada05/group-stage/services"
)

type MatchHandler struct {
	resultService services.ResultService
}

func NewMatchHandler(rs services.ResultService) *MatchHandler {
	return &MatchHandler{resultService: rs}
}

// Счёт принимается как число или строка; дробные и отрицательные значения отклоняет ParseScore.
type setScoreInput struct {
	Score1 json.Number `json:"score1"`
	Score2 json.Number `json:"score2"`
}

type addGoalInput struct {
	Player string `json:"player"`
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.resultService.ListMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := pathID(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	details, err := h.resultService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"match": details.Match, "goals": details.Goals}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) SetScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := pathID(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input setScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	score1, err := services.ParseScore(input.Score1.String())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	score2, err := services.ParseScore(input.Score2.String())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	match, err := h.resultService.SetScore(r.Context(), matchID, score1, score2)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) AddGoal(w http.ResponseWriter, r *http.Request) {
	matchID, err := pathID(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input addGoalInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	goal, err := h.resultService.AddGoal(r.Context(), matchID, input.Player)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"goal": goal}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
