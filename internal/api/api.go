//GET  /api/records         # Список записей
//GET  /api/records/search  # Поиск по полю схемы
//GET  /api/records/{id}    # Получить запись
//POST /api/records         # Создать запись
//PUT  /api/records/{id}    # Обновить запись
//DELETE /api/records/{id}  # Удалить запись
//GET  /api/records/export  # Снимок коллекции
//POST /api/records/import  # Замещение коллекции снимком
//GET  /api/schema          # Схема записей

package api

import (
	healthAPI "recordbase/internal/api/http/health"
	"recordbase/internal/api/http/middleware"
	"recordbase/internal/api/http/middleware/logger"
	recordAPI "recordbase/internal/api/http/record"
	"recordbase/internal/domain/record"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	Record *recordAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register.
// driver - имя активного драйвера хранилища, попадает в health.
func New(service record.Servicer, driver string, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Recordbase API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(service, driver, log)
	h.Health.SetupRoutes(API)
	h.Record.SetupRoutes(API)

	return mux
}

func handlers(service record.Servicer, driver string, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(service, driver, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	recordHandler := recordAPI.NewHandler(service, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Record: recordHandler,
	}
}
