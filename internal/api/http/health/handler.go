package health

import (
	"context"

	"recordbase/internal/domain/record"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Lister отдает записи для подсчета; полный Servicer здесь не нужен.
type Lister interface {
	ListAll(ctx context.Context) ([]record.Record, error)
}

type Handler struct {
	lister     Lister
	driver     string
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(lister Lister, driver string, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		lister:     lister,
		driver:     driver,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

// healthCheck проверяет доступность хранилища реальным чтением коллекции.
func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	records, err := h.lister.ListAll(ctx)
	if err != nil {
		h.log.Warn("health check storage read failed", "error", err)
		return &Output{
			Body: Response{
				Status: "DEGRADED",
				Driver: h.driver,
			},
		}, nil
	}

	return &Output{
		Body: Response{
			Status:  "OK",
			Driver:  h.driver,
			Records: len(records),
		},
	}, nil
}
