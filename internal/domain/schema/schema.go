// Package schema описывает структуру записи: упорядоченный список полей и
// поля, по которым выполняется поиск. Схема управляет и инициализацией
// хранилища, и генерацией формы.
package schema

import (
	"fmt"
	"regexp"
)

// Имена полей попадают в выражения индексов, поэтому ограничены
// идентификаторами.
var fieldNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FieldDescriptor описывает одно поле записи.
type FieldDescriptor struct {
	Name     string   `json:"name" mapstructure:"name"`
	Kind     Kind     `json:"kind" mapstructure:"kind"`
	Label    string   `json:"label" mapstructure:"label"`
	Required bool     `json:"required,omitempty" mapstructure:"required"`
	Options  []string `json:"options,omitempty" mapstructure:"options"`
	Min      *float64 `json:"min,omitempty" mapstructure:"min"`
	Max      *float64 `json:"max,omitempty" mapstructure:"max"`
}

// Schema - упорядоченный список полей плюс имена полей поиска.
type Schema struct {
	Fields         []FieldDescriptor `json:"fields" mapstructure:"fields"`
	SearchFields   []string          `json:"search_fields" mapstructure:"search_fields"`
	CreatedAtField string            `json:"created_at_field,omitempty" mapstructure:"created_at_field"`
}

// Validate проверяет целостность схемы: уникальность имен, ровно одно
// поле-идентификатор, options только у select, корректность полей поиска.
func (s *Schema) Validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: схема не содержит полей", ErrInvalidSchema)
	}

	seen := make(map[string]Kind, len(s.Fields))
	identifiers := 0

	for _, fd := range s.Fields {
		if !fieldNameRe.MatchString(fd.Name) {
			return fmt.Errorf("%w: недопустимое имя поля %q", ErrInvalidSchema, fd.Name)
		}
		if _, ok := seen[fd.Name]; ok {
			return fmt.Errorf("%w: повторяющееся имя поля %q", ErrInvalidSchema, fd.Name)
		}
		if err := fd.Kind.Valid(); err != nil {
			return err
		}
		if fd.Kind == KindIdentifier {
			identifiers++
		}
		if fd.Kind == KindSelect && len(fd.Options) == 0 {
			return fmt.Errorf("%w: поле %q типа select без options", ErrInvalidSchema, fd.Name)
		}
		if fd.Kind != KindSelect && len(fd.Options) > 0 {
			return fmt.Errorf("%w: options допустимы только для select (поле %q)", ErrInvalidSchema, fd.Name)
		}
		if (fd.Min != nil || fd.Max != nil) && fd.Kind != KindNumber {
			return fmt.Errorf("%w: границы min/max допустимы только для number (поле %q)", ErrInvalidSchema, fd.Name)
		}
		seen[fd.Name] = fd.Kind
	}

	if identifiers != 1 {
		return fmt.Errorf("%w: требуется ровно одно поле-идентификатор, найдено %d", ErrInvalidSchema, identifiers)
	}

	for _, name := range s.SearchFields {
		kind, ok := seen[name]
		if !ok {
			return fmt.Errorf("%w: поле поиска %q не объявлено", ErrInvalidSchema, name)
		}
		if kind == KindIdentifier {
			return fmt.Errorf("%w: поле-идентификатор %q не индексируется", ErrInvalidSchema, name)
		}
	}

	if s.CreatedAtField != "" {
		kind, ok := seen[s.CreatedAtField]
		if !ok {
			return fmt.Errorf("%w: created_at_field %q не объявлено", ErrInvalidSchema, s.CreatedAtField)
		}
		if kind != KindDate {
			return fmt.Errorf("%w: created_at_field %q должно быть типа date", ErrInvalidSchema, s.CreatedAtField)
		}
	}

	return nil
}

// Field возвращает дескриптор поля по имени.
func (s *Schema) Field(name string) (FieldDescriptor, bool) {
	for _, fd := range s.Fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return FieldDescriptor{}, false
}

// IDField возвращает имя поля-идентификатора. Схема должна быть
// провалидирована до использования.
func (s *Schema) IDField() string {
	for _, fd := range s.Fields {
		if fd.Kind == KindIdentifier {
			return fd.Name
		}
	}
	return ""
}

// IsSearchField сообщает, объявлено ли поле как поле поиска.
func (s *Schema) IsSearchField(name string) bool {
	for _, f := range s.SearchFields {
		if f == name {
			return true
		}
	}
	return false
}

// Default возвращает схему универсальной базы записей, используемую когда
// внешний файл схемы не задан.
func Default() *Schema {
	one := 1.0
	five := 5.0
	return &Schema{
		Fields: []FieldDescriptor{
			{Name: "id", Kind: KindIdentifier, Label: "ID"},
			{Name: "name", Kind: KindText, Label: "Название", Required: true},
			{Name: "description", Kind: KindTextarea, Label: "Описание"},
			{Name: "category", Kind: KindSelect, Label: "Категория", Options: []string{"Категория 1", "Категория 2", "Категория 3"}},
			{Name: "rating", Kind: KindNumber, Label: "Рейтинг", Min: &one, Max: &five},
			{Name: "createdAt", Kind: KindDate, Label: "Дата создания"},
			{Name: "photo", Kind: KindImage, Label: "Изображение"},
		},
		SearchFields:   []string{"name", "description", "category"},
		CreatedAtField: "createdAt",
	}
}
