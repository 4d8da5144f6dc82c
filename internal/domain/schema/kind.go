package schema

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

// Kind определяет тип поля схемы.
type Kind string

const (
	KindIdentifier Kind = "identifier"
	KindText       Kind = "text"
	KindTextarea   Kind = "textarea"
	KindSelect     Kind = "select"
	KindNumber     Kind = "number"
	KindDate       Kind = "date"
	KindImage      Kind = "image"
)

// Schema реализует huma.SchemaProvider для документации API.
func (Kind) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: "string",
		Enum: []any{
			string(KindIdentifier),
			string(KindText),
			string(KindTextarea),
			string(KindSelect),
			string(KindNumber),
			string(KindDate),
			string(KindImage),
		},
		Description: "Тип поля записи",
		Examples:    []any{KindText},
	}
}

// Valid проверяет, что тип поля известен. Неизвестные типы отклоняются
// при загрузке схемы, а не в кодеке.
func (k Kind) Valid() error {
	switch k {
	case KindIdentifier, KindText, KindTextarea, KindSelect, KindNumber, KindDate, KindImage:
		return nil
	}
	return fmt.Errorf("%w: неизвестный тип поля %q", ErrInvalidSchema, string(k))
}

// String возвращает строковое представление типа.
func (k Kind) String() string {
	return string(k)
}

// DisplayName возвращает человекочитаемое название типа.
func (k Kind) DisplayName() string {
	switch k {
	case KindIdentifier:
		return "Идентификатор"
	case KindText:
		return "Текст"
	case KindTextarea:
		return "Многострочный текст"
	case KindSelect:
		return "Выбор из списка"
	case KindNumber:
		return "Число"
	case KindDate:
		return "Дата"
	case KindImage:
		return "Изображение"
	default:
		return "Неизвестный тип"
	}
}
