package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/brackets"
)

const maxLayoutPlayers = 512

type PouleLayoutResponse struct {
	Players   int                    `json:"players"`
	AllowTwo  bool                   `json:"allow_two"`
	Layout    brackets.PouleLayout   `json:"layout"`
	Schedules [][]brackets.Encounter `json:"schedules"`
}

// PouleLayoutHandler godoc
// @Summary Poule sizes, tables and round-robin order for a player count
// @Tags poules
// @Produce json
// @Param players query int true "Number of players"
// @Param allow_two query bool false "Allow a poule of two"
// @Success 200 {object} PouleLayoutResponse
// @Failure 400 {object} map[string]string
// @Router /poules/layout [get]
func PouleLayoutHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	players, err := strconv.Atoi(query.Get("players"))
	if err != nil || players < 0 {
		badRequestResponse(w, r, errors.New("players must be a non-negative integer"))
		return
	}
	if players > maxLayoutPlayers {
		badRequestResponse(w, r, errors.New("players must not exceed "+strconv.Itoa(maxLayoutPlayers)))
		return
	}

	allowTwo := false
	if v := query.Get("allow_two"); v != "" {
		allowTwo, err = strconv.ParseBool(v)
		if err != nil {
			badRequestResponse(w, r, errors.New("allow_two must be a boolean"))
			return
		}
	}

	layout := brackets.DistributePoules(players, allowTwo)
	resp := PouleLayoutResponse{
		Players:   players,
		AllowTwo:  allowTwo,
		Layout:    layout,
		Schedules: brackets.LayoutSchedules(layout.Sizes),
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
