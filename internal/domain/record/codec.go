package record

import (
	"strconv"
	"strings"
	"time"

	"recordbase/internal/domain/schema"
)

// Форматы дат, принимаемые из формы: календарная дата, полная метка
// времени и формат предзаполнения EncodeForDisplay, чтобы форма,
// сохраненная без правок, проходила валидацию.
var dateLayouts = []string{"2006-01-02", time.RFC3339, displayDateLayout}

// displayDateLayout - календарный формат вывода дат в форме.
const displayDateLayout = "02.01.2006"

// EditSession - состояние одного сеанса редактирования. Значение
// принадлежит вызывающей стороне: передается в Save и возвращается
// обнуленным при успехе. BoundID == 0 означает создание новой записи;
// PendingImage содержит data-URI изображения, выбранного в этом сеансе.
type EditSession struct {
	BoundID      int64
	PendingImage string
}

// Editing сообщает, привязан ли сеанс к существующей записи.
func (s EditSession) Editing() bool {
	return s.BoundID > 0
}

// Codec преобразует сырые значения полей формы в типизированную запись и
// обратно, применяя покиндовую коэрцию и валидацию.
type Codec struct {
	schema  *schema.Schema
	maxDate time.Time
	now     func() time.Time
}

// NewCodec создает кодек. maxDate - верхняя граница для полей типа date.
func NewCodec(s *schema.Schema, maxDate time.Time) *Codec {
	return &Codec{
		schema:  s,
		maxDate: maxDate,
		now:     time.Now,
	}
}

// DecodeForSave превращает значения формы в запись. Для обязательных полей
// пустое значение - ошибка; числа и даты коэрцируются по типу; изображение
// берется из сеанса, а если в этом сохранении оно не менялось - переносится
// из prev без изменений. При создании (несвязанный сеанс) незаполненное
// поле даты создания штампуется текущим временем.
func (c *Codec) DecodeForSave(values map[string]string, sess EditSession, prev Record) (Record, error) {
	fields := make(map[string]any, len(c.schema.Fields))

	for _, fd := range c.schema.Fields {
		switch fd.Kind {
		case schema.KindIdentifier:
			continue
		case schema.KindImage:
			switch {
			case sess.PendingImage != "":
				fields[fd.Name] = sess.PendingImage
			case prev != nil && prev[fd.Name] != nil:
				fields[fd.Name] = prev[fd.Name]
			}
			continue
		}

		raw := strings.TrimSpace(values[fd.Name])
		if raw == "" {
			if fd.Required {
				return nil, &ValidationError{Field: fd.Name, Reason: ReasonMissingRequired}
			}
			continue
		}

		switch fd.Kind {
		case schema.KindNumber:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &ValidationError{Field: fd.Name, Reason: ReasonInvalidNumber}
			}
			fields[fd.Name] = n
		case schema.KindDate:
			t, err := parseDate(raw)
			if err != nil {
				return nil, &ValidationError{Field: fd.Name, Reason: ReasonInvalidDate}
			}
			if t.After(c.maxDate) {
				return nil, &ValidationError{Field: fd.Name, Reason: ReasonDateOutOfRange}
			}
			fields[fd.Name] = t.UTC().Format(time.RFC3339)
		default:
			fields[fd.Name] = raw
		}
	}

	if !sess.Editing() && c.schema.CreatedAtField != "" && fields[c.schema.CreatedAtField] == nil {
		fields[c.schema.CreatedAtField] = c.now().UTC().Format(time.RFC3339)
	}

	rec := New(c.schema, fields)
	if sess.Editing() {
		rec.SetID(c.schema, sess.BoundID)
	}
	return rec, nil
}

// EncodeForDisplay - обратное преобразование для предзаполнения формы.
// Даты выводятся календарным форматом, изображение отдается как есть -
// его рендер остается за UI.
func (c *Codec) EncodeForDisplay(r Record) map[string]string {
	out := make(map[string]string, len(c.schema.Fields))
	for _, fd := range c.schema.Fields {
		v := r[fd.Name]
		if v == nil {
			out[fd.Name] = ""
			continue
		}
		switch fd.Kind {
		case schema.KindDate:
			if t, err := time.Parse(time.RFC3339, Stringify(v)); err == nil {
				out[fd.Name] = t.Local().Format(displayDateLayout)
				continue
			}
			out[fd.Name] = Stringify(v)
		default:
			out[fd.Name] = Stringify(v)
		}
	}
	return out
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
