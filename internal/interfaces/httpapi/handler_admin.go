package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/mecajames/NewMECAV2-sub004/internal/usecase"
)

type syncLinksRequest struct {
	SeasonID   string `json:"season_id"`
	BatchSize  int    `json:"batch_size" validate:"omitempty,gte=1,lte=5000"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,gte=1,lte=4"`
}

func (h *Handler) RunLinkSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLinkSync")
	defer span.End()

	var req syncLinksRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.links.SyncAll(ctx, usecase.SyncAllInput{
		SeasonID:   req.SeasonID,
		BatchSize:  req.BatchSize,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "link sync failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) ClearStandingsCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearStandingsCache")
	defer span.End()

	h.cache.Clear(ctx)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) WarmStandingsCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WarmStandingsCache")
	defer span.End()

	// A failed sub-query only leaves that view cold; the warm still
	// succeeded for the rest, so report it instead of failing the call.
	if err := h.cache.Warm(ctx); err != nil {
		h.logger.WarnContext(ctx, "cache warm incomplete", "error", err)
		writeSuccess(ctx, w, http.StatusOK, map[string]string{
			"status":  "partial",
			"message": "some standings views failed to warm and will be computed on first read",
		})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "warmed"})
}
