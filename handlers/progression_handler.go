package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/middleware"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/services"
)

type ProgressionHandler struct {
	progressionService services.ProgressionService
	tournamentService  *services.TournamentService
	logger             *slog.Logger
}

func NewProgressionHandler(ps services.ProgressionService, ts *services.TournamentService, logger *slog.Logger) *ProgressionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressionHandler{
		progressionService: ps,
		tournamentService:  ts,
		logger:             logger,
	}
}

type PouleResultsInput struct {
	Results []models.PouleResult `json:"results"`
}

// GenerateHandler godoc
// @Summary Generate poules, bracket and classification matches
// @Description Replaces any previous generation of the tournament.
// @Tags progression
// @Produce json
// @Security BearerAuth
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} services.GenerationResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/generate [post]
func (h *ProgressionHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := h.authorizedTournament(w, r)
	if !ok {
		return
	}

	result, err := h.progressionService.Generate(r.Context(), tournamentID)
	if err != nil {
		mapProgressionErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"generation": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordMatchResultHandler godoc
// @Summary Record a match result
// @Description Fills the final, petite finale or classification round 2 when their prerequisites are decided.
// @Tags progression
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tournamentID path int true "Tournament ID"
// @Param matchID path int true "Match ID"
// @Param input body services.MatchResultInput true "Scores and winner"
// @Success 200 {object} models.Match
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /tournaments/{tournamentID}/matches/{matchID}/result [post]
func (h *ProgressionHandler) RecordMatchResultHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := h.authorizedTournament(w, r)
	if !ok {
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.MatchResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.progressionService.RecordMatchResult(r.Context(), tournamentID, matchID, input)
	if err != nil {
		mapProgressionErrorToHTTP(w, r, err)
		return
	}

	if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		h.logger.InfoContext(r.Context(), "Result recorded by user",
			slog.Int("user_id", userID),
			slog.Int("match_id", match.ID),
		)
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// FinalizeHandler godoc
// @Summary Compute and store final positions and points
// @Tags progression
// @Produce json
// @Security BearerAuth
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} services.FinalizationResult
// @Failure 409 {object} map[string]interface{} "lists unfinished_match_ids"
// @Router /tournaments/{tournamentID}/finalize [post]
func (h *ProgressionHandler) FinalizeHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := h.authorizedTournament(w, r)
	if !ok {
		return
	}

	result, err := h.progressionService.Finalize(r.Context(), tournamentID)
	if err != nil {
		mapProgressionErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"finalization": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStateHandler godoc
// @Summary Current matches, standings and mode of a tournament
// @Tags progression
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} services.TournamentState
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/state [get]
func (h *ProgressionHandler) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.progressionService.GetState(r.Context(), tournamentID)
	if err != nil {
		mapProgressionErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"state": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReplacePouleResultsHandler godoc
// @Summary Replace the round-robin result rows of a tournament
// @Tags progression
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tournamentID path int true "Tournament ID"
// @Param input body PouleResultsInput true "One row per participant per played match"
// @Success 200 {array} models.Poule
// @Failure 400 {object} map[string]string
// @Router /tournaments/{tournamentID}/poule-results [put]
func (h *ProgressionHandler) ReplacePouleResultsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := h.authorizedTournament(w, r)
	if !ok {
		return
	}

	var input PouleResultsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	poules, err := h.progressionService.ReplacePouleResults(r.Context(), tournamentID, input.Results)
	if err != nil {
		mapProgressionErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"poules": poules}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// authorizedTournament reads the tournament id from the path and checks the
// caller's club owns it. Admins may act on any club. It writes the error
// response itself and reports false when the request must stop.
func (h *ProgressionHandler) authorizedTournament(w http.ResponseWriter, r *http.Request) (int, bool) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, false
	}

	role, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return 0, false
	}
	if role == middleware.RoleAdmin {
		return tournamentID, true
	}

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		forbiddenResponse(w, r, err.Error())
		return 0, false
	}
	tournament, err := h.tournamentService.GetTournamentByID(r.Context(), tournamentID)
	if err != nil {
		mapProgressionErrorToHTTP(w, r, err)
		return 0, false
	}
	if tournament.TenantID != tenantID {
		forbiddenResponse(w, r, "tournament belongs to another club")
		return 0, false
	}
	return tournamentID, true
}
