package record

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageRead        = errors.New("storage read failed")
	ErrStorageWrite       = errors.New("storage write failed")
	ErrIndexNotFound      = errors.New("index not found")
	ErrInvalidSearchField = errors.New("invalid search field")
	ErrNothingToExport    = errors.New("nothing to export")
)

// Reason классифицирует ошибку валидации.
type Reason string

const (
	ReasonMissingRequired Reason = "missing_required"
	ReasonInvalidNumber   Reason = "invalid_number"
	ReasonInvalidDate     Reason = "invalid_date"
	ReasonDateOutOfRange  Reason = "date_out_of_range"
	ReasonNotASequence    Reason = "not_a_sequence"
)

// ValidationError указывает на отклоненное значение поля. Состояние формы
// остается у вызывающей стороны для исправления.
type ValidationError struct {
	Field  string
	Reason Reason
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on field %q: %s", e.Field, e.Reason)
}

// AsValidation извлекает ValidationError из цепочки ошибок.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
