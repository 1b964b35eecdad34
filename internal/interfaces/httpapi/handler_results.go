package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/mecajames/NewMECAV2-sub004/internal/domain/result"
	"github.com/mecajames/NewMECAV2-sub004/internal/usecase"
)

type resultDTO struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	SeasonID       string    `json:"season_id"`
	CompetitorID   string    `json:"competitor_id,omitempty"`
	CompetitorName string    `json:"competitor_name"`
	MecaID         string    `json:"meca_id"`
	ClassID        string    `json:"class_id"`
	ClassName      string    `json:"class_name"`
	Format         string    `json:"format"`
	Score          float64   `json:"score"`
	Placement      int       `json:"placement"`
	PointsEarned   int       `json:"points_earned"`
	RevisionCount  int       `json:"revision_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func resultToDTO(row result.CompetitionResult) resultDTO {
	return resultDTO{
		ID:             row.ID,
		EventID:        row.EventID,
		SeasonID:       row.SeasonID,
		CompetitorID:   row.CompetitorID,
		CompetitorName: row.CompetitorName,
		MecaID:         row.MecaID,
		ClassID:        row.ClassID,
		ClassName:      row.ClassName,
		Format:         row.Format,
		Score:          row.Score,
		Placement:      row.Placement,
		PointsEarned:   row.PointsEarned,
		RevisionCount:  row.RevisionCount,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

type createResultRequest struct {
	EventID        string  `json:"event_id" validate:"required"`
	CompetitorID   string  `json:"competitor_id"`
	CompetitorName string  `json:"competitor_name" validate:"required,max=200"`
	MecaID         string  `json:"meca_id"`
	ClassID        string  `json:"class_id" validate:"required"`
	ClassName      string  `json:"class_name" validate:"required,max=100"`
	Format         string  `json:"format" validate:"required"`
	Score          float64 `json:"score" validate:"gte=0"`
	CreatedBy      string  `json:"created_by"`
}

type updateResultRequest struct {
	Score          *float64 `json:"score" validate:"omitempty,gte=0"`
	CompetitorName *string  `json:"competitor_name" validate:"omitempty,max=200"`
	MecaID         *string  `json:"meca_id"`
	Reason         string   `json:"reason" validate:"required,max=500"`
	UpdatedBy      string   `json:"updated_by"`
}

type deleteResultRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func (h *Handler) CreateResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateResult")
	defer span.End()

	var req createResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.results.CreateResult(ctx, usecase.CreateResultInput{
		EventID:        req.EventID,
		CompetitorID:   req.CompetitorID,
		CompetitorName: req.CompetitorName,
		MecaID:         req.MecaID,
		ClassID:        req.ClassID,
		ClassName:      req.ClassName,
		Format:         req.Format,
		Score:          req.Score,
		CreatedBy:      req.CreatedBy,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create result failed", "event_id", req.EventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, resultToDTO(created))
}

func (h *Handler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateResult")
	defer span.End()

	resultID := r.PathValue("resultID")

	var req updateResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.results.UpdateResult(ctx, usecase.UpdateResultInput{
		ID:             resultID,
		Score:          req.Score,
		CompetitorName: req.CompetitorName,
		MecaID:         req.MecaID,
		Reason:         req.Reason,
		UpdatedBy:      req.UpdatedBy,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update result failed", "result_id", resultID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(updated))
}

func (h *Handler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteResult")
	defer span.End()

	resultID := r.PathValue("resultID")

	var req deleteResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.results.DeleteResult(ctx, resultID, req.Reason); err != nil {
		h.logger.WarnContext(ctx, "delete result failed", "result_id", resultID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted", "result_id": resultID})
}

func (h *Handler) ListEventResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEventResults")
	defer span.End()

	eventID := r.PathValue("eventID")
	rows, err := h.results.ListByEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "list event results failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]resultDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, resultToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
