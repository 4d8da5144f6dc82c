package record

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-list",
		Method:      http.MethodGet,
		Path:        "/api/records",
		Summary:     "Список всех записей",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) searchOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-search",
		Method:      http.MethodGet,
		Path:        "/api/records/search",
		Summary:     "Поиск записей по полю",
		Description: "Ищет записи, у которых значение поля содержит подстроку без учета регистра. Пустой запрос возвращает все записи.",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-find",
		Method:      http.MethodGet,
		Path:        "/api/records/{id}",
		Summary:     "Получить запись",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-create",
		Method:      http.MethodPost,
		Path:        "/api/records",
		Summary:     "Создать запись",
		Description: "Создает запись из строковых значений формы. Значения приводятся к типам полей схемы.",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-update",
		Method:      http.MethodPut,
		Path:        "/api/records/{id}",
		Summary:     "Обновить запись",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-delete",
		Method:      http.MethodDelete,
		Path:        "/api/records/{id}",
		Summary:     "Удалить запись",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) exportOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-export",
		Method:      http.MethodGet,
		Path:        "/api/records/export",
		Summary:     "Экспорт всех записей",
		Description: "Возвращает JSON-снимок всей коллекции.",
		Tags:        []string{"records", "transfer"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) importOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-import",
		Method:      http.MethodPost,
		Path:        "/api/records/import",
		Summary:     "Импорт записей",
		Description: "Атомарно замещает всю коллекцию содержимым JSON-снимка.",
		Tags:        []string{"records", "transfer"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) schemaOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-schema",
		Method:      http.MethodGet,
		Path:        "/api/schema",
		Summary:     "Схема записей",
		Tags:        []string{"schema"},
		Middlewares: h.middleware,
	}
}
