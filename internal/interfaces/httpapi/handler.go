package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mecajames/NewMECAV2-sub004/internal/platform/logging"
	"github.com/mecajames/NewMECAV2-sub004/internal/usecase"
)

// StandingsCache is the maintenance surface of the standings cache exposed
// on admin routes.
type StandingsCache interface {
	Clear(ctx context.Context)
	Warm(ctx context.Context) error
}

type Handler struct {
	standings     usecase.StandingsProvider
	results       *usecase.ResultService
	qualification *usecase.QualificationService
	links         *usecase.ResultTeamLinkService
	cache         StandingsCache
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	standings usecase.StandingsProvider,
	results *usecase.ResultService,
	qualification *usecase.QualificationService,
	links *usecase.ResultTeamLinkService,
	cache StandingsCache,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standings:     standings,
		results:       results,
		qualification: qualification,
		links:         links,
		cache:         cache,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
