package record

import (
	"fmt"
	"strconv"

	"recordbase/internal/domain/schema"
)

// Record - отображение имени поля в сохраненное значение. Записи,
// построенные через New, содержат все объявленные схемой поля; отсутствующие
// необязательные значения хранятся как nil, а не опускаются, чтобы сканы
// индексов оставались корректными.
type Record map[string]any

// New строит запись по схеме: каждое объявленное поле присутствует,
// незаполненные значения - явные nil.
func New(s *schema.Schema, fields map[string]any) Record {
	rec := make(Record, len(s.Fields))
	for _, fd := range s.Fields {
		v, ok := fields[fd.Name]
		if !ok {
			rec[fd.Name] = nil
			continue
		}
		rec[fd.Name] = v
	}
	return rec
}

// ID возвращает суррогатный ключ записи. Значение может прийти из JSON
// как float64, из хранилища как int64.
func (r Record) ID(s *schema.Schema) (int64, bool) {
	v, ok := r[s.IDField()]
	if !ok || v == nil {
		return 0, false
	}
	switch id := v.(type) {
	case int64:
		return id, id > 0
	case int:
		return int64(id), id > 0
	case float64:
		return int64(id), id > 0
	}
	return 0, false
}

// SetID проставляет суррогатный ключ.
func (r Record) SetID(s *schema.Schema, id int64) {
	r[s.IDField()] = id
}

// Clone возвращает неглубокую копию записи.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Stringify приводит сохраненное значение к строке для поиска и вывода.
// nil дает пустую строку.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
