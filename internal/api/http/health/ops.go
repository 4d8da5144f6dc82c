package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Health check endpoint",
		Description: "Проверяет доступность хранилища и возвращает состояние сервиса вместе с активным драйвером и числом записей.",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
