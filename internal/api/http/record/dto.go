package record

import (
	"recordbase/internal/domain/record"
	"recordbase/internal/domain/schema"
)

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Records []record.Record `json:"records"`
	Total   int             `json:"total"`
}

type searchInput struct {
	Field string `query:"field" example:"name" doc:"Поле поиска из схемы"`
	Term  string `query:"term" example:"widget" doc:"Подстрока для поиска, без учета регистра"`
}

type findInput struct {
	ID int64 `path:"id" example:"1" doc:"ID записи"`
}

type saveInput struct {
	Body saveRequest
}

type updateInput struct {
	ID   int64 `path:"id" example:"1" doc:"ID записи"`
	Body saveRequest
}

type saveRequest struct {
	Values map[string]string `json:"values" doc:"Значения полей формы, все в строковом виде"`
	Image  string            `json:"image,omitempty" doc:"Изображение (data URI), заменяет текущее"`
}

type saveOutput struct {
	Body saveResponse
}

type saveResponse struct {
	ID     int64         `json:"id"`
	Status string        `json:"status"`
	Record record.Record `json:"record"`
}

type findOutput struct {
	Body findResponse
}

type findResponse struct {
	Record  record.Record     `json:"record"`
	Display map[string]string `json:"display"`
}

type deleteOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}

type exportOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

type importInput struct {
	RawBody []byte `contentType:"application/json"`
}

type importOutput struct {
	Body importResponse
}

type importResponse struct {
	Imported int    `json:"imported"`
	Status   string `json:"status"`
}

type schemaOutput struct {
	Body *schema.Schema
}
