package record

import (
	"context"
	"errors"

	"recordbase/internal/domain/record"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    record.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service record.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.searchOp(), h.search)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.exportOp(), h.export)
	huma.Register(api, h.importOp(), h.importReplace)
	huma.Register(api, h.schemaOp(), h.schema)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	records, err := h.service.ListAll(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return &listOutput{
		Body: listResponse{
			Records: records,
			Total:   len(records),
		},
	}, nil
}

func (h *Handler) search(ctx context.Context, input *searchInput) (*listOutput, error) {
	records, err := h.service.Search(ctx, input.Field, input.Term)
	if err != nil {
		return nil, mapError(err)
	}

	return &listOutput{
		Body: listResponse{
			Records: records,
			Total:   len(records),
		},
	}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	rec, err := h.service.Find(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return &findOutput{
		Body: findResponse{
			Record:  rec,
			Display: h.service.Display(rec),
		},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *saveInput) (*saveOutput, error) {
	return h.save(ctx, input.Body, record.EditSession{PendingImage: input.Body.Image})
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*saveOutput, error) {
	sess := record.EditSession{
		BoundID:      input.ID,
		PendingImage: input.Body.Image,
	}
	return h.save(ctx, input.Body, sess)
}

func (h *Handler) save(ctx context.Context, req saveRequest, sess record.EditSession) (*saveOutput, error) {
	rec, _, err := h.service.Save(ctx, req.Values, sess)
	if err != nil {
		return nil, mapError(err)
	}

	id, _ := rec.ID(h.service.Schema())
	return &saveOutput{
		Body: saveResponse{
			ID:     id,
			Status: "Ok",
			Record: rec,
		},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *findInput) (*deleteOutput, error) {
	if err := h.service.Remove(ctx, input.ID); err != nil {
		return nil, mapError(err)
	}

	return &deleteOutput{
		Body: statusResponse{Status: "Ok"},
	}, nil
}

func (h *Handler) export(ctx context.Context, _ *struct{}) (*exportOutput, error) {
	data, err := h.service.ExportAll(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return &exportOutput{
		ContentType: "application/json",
		Body:        data,
	}, nil
}

func (h *Handler) importReplace(ctx context.Context, input *importInput) (*importOutput, error) {
	count, err := h.service.ImportReplace(ctx, input.RawBody)
	if err != nil {
		return nil, mapError(err)
	}

	h.log.Info("records imported", slog.Int("count", count))

	return &importOutput{
		Body: importResponse{
			Imported: count,
			Status:   "Ok",
		},
	}, nil
}

func (h *Handler) schema(_ context.Context, _ *struct{}) (*schemaOutput, error) {
	return &schemaOutput{Body: h.service.Schema()}, nil
}

// mapError переводит ошибки домена в HTTP статусы.
func mapError(err error) error {
	if verr, ok := record.AsValidation(err); ok {
		return huma.Error422UnprocessableEntity(verr.Error())
	}

	switch {
	case errors.Is(err, record.ErrNotFound):
		return huma.Error404NotFound("Запись не найдена")
	case errors.Is(err, record.ErrNothingToExport):
		return huma.Error404NotFound("Нет данных для экспорта")
	case errors.Is(err, record.ErrInvalidSearchField):
		return huma.Error400BadRequest("Поиск по этому полю не поддерживается")
	default:
		return huma.Error500InternalServerError("Внутренняя ошибка хранилища")
	}
}
