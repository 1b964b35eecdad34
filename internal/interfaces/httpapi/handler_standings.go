package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mecajames/NewMECAV2-sub004/internal/usecase"
)

func (h *Handler) GetSeasonLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonLeaderboard")
	defer span.End()

	query := usecase.LeaderboardQuery{
		SeasonID: strings.TrimSpace(r.URL.Query().Get("season_id")),
	}
	limit, ok := parseIntParam(ctx, w, r, "limit")
	if !ok {
		return
	}
	offset, ok := parseIntParam(ctx, w, r, "offset")
	if !ok {
		return
	}
	query.Limit = limit
	query.Offset = offset

	board, err := h.standings.SeasonLeaderboard(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "season leaderboard failed", "season_id", query.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}

func (h *Handler) GetFormatLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFormatLeaderboard")
	defer span.End()

	format := r.PathValue("format")
	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))
	limit, ok := parseIntParam(ctx, w, r, "limit")
	if !ok {
		return
	}

	board, err := h.standings.LeaderboardByFormat(ctx, seasonID, format, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "format leaderboard failed", "format", format, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}

func (h *Handler) GetClassLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClassLeaderboard")
	defer span.End()

	className := r.PathValue("className")
	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))
	limit, ok := parseIntParam(ctx, w, r, "limit")
	if !ok {
		return
	}

	board, err := h.standings.LeaderboardByClass(ctx, seasonID, className, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "class leaderboard failed", "class_name", className, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}

func (h *Handler) GetTeamStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStandings")
	defer span.End()

	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))
	limit, ok := parseIntParam(ctx, w, r, "limit")
	if !ok {
		return
	}
	standings, err := h.standings.TeamStandings(ctx, seasonID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "team standings failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standings)
}

func (h *Handler) GetFormatSummaries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFormatSummaries")
	defer span.End()

	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))
	summaries, err := h.standings.FormatSummaries(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "format summaries failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaries)
}

func (h *Handler) GetCompetitorStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetitorStats")
	defer span.End()

	mecaID := r.PathValue("mecaID")
	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))

	stats, err := h.standings.CompetitorStats(ctx, seasonID, mecaID)
	if err != nil {
		h.logger.WarnContext(ctx, "competitor stats failed", "meca_id", mecaID, "error", err)
		writeError(ctx, w, err)
		return
	}
	// A competitor with no recorded results is an empty outcome, not an
	// error: the data field is null and the status stays 200.
	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClasses")
	defer span.End()

	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))
	format := strings.TrimSpace(r.URL.Query().Get("format"))
	classes, err := h.standings.ClassesWithResults(ctx, seasonID, format)
	if err != nil {
		h.logger.WarnContext(ctx, "list classes failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, classes)
}

func (h *Handler) GetFinalsGroupResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFinalsGroupResults")
	defer span.End()

	groupID := r.PathValue("groupID")
	rows, err := h.standings.FinalsGroupResults(ctx, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "finals group results failed", "group_id", groupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]resultDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, resultToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetQualificationByClass(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetQualificationByClass")
	defer span.End()

	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))
	threshold, ok := parseIntParam(ctx, w, r, "threshold")
	if !ok {
		return
	}

	classes, err := h.qualification.QualificationByClass(ctx, seasonID, threshold)
	if err != nil {
		h.logger.WarnContext(ctx, "qualification by class failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, classes)
}

func (h *Handler) GetCompetitorQualification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetitorQualification")
	defer span.End()

	mecaID := r.PathValue("mecaID")
	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))

	qualified, classes, err := h.qualification.CompetitorQualification(ctx, seasonID, mecaID)
	if err != nil {
		h.logger.WarnContext(ctx, "competitor qualification failed", "meca_id", mecaID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitorQualificationDTO{
		MecaID:    mecaID,
		Qualified: qualified,
		Classes:   classes,
	})
}

type competitorQualificationDTO struct {
	MecaID    string   `json:"meca_id"`
	Qualified bool     `json:"qualified"`
	Classes   []string `json:"classes"`
}

// parseIntParam reads an optional non-negative integer query parameter,
// writing a 400 and returning false on garbage.
func parseIntParam(ctx context.Context, w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		writeError(ctx, w, fmt.Errorf("%w: %s must be a non-negative integer", usecase.ErrInvalidInput, name))
		return 0, false
	}
	return value, true
}
