package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"recordbase/internal/domain/schema"
)

// Servicer - операции над коллекцией записей, предоставляемые UI.
type Servicer interface {
	ListAll(ctx context.Context) ([]Record, error)
	Find(ctx context.Context, id int64) (Record, error)
	Search(ctx context.Context, field, term string) ([]Record, error)
	Save(ctx context.Context, values map[string]string, sess EditSession) (Record, EditSession, error)
	Remove(ctx context.Context, id int64) error
	ExportAll(ctx context.Context) ([]byte, error)
	ImportReplace(ctx context.Context, snapshot []byte) (int, error)
	Schema() *schema.Schema
	Display(rec Record) map[string]string
}

// Service реализует бизнес-логику операций над записями.
type Service struct {
	store  Storer
	codec  *Codec
	schema *schema.Schema
	log    *slog.Logger
}

// NewService создает сервис записей.
func NewService(store Storer, codec *Codec, s *schema.Schema, log *slog.Logger) Servicer {
	return &Service{
		store:  store,
		codec:  codec,
		schema: s,
		log:    log.With("component", "record_service"),
	}
}

// Schema возвращает схему, управляющую коллекцией.
func (s *Service) Schema() *schema.Schema {
	return s.schema
}

// Display возвращает строковое представление полей записи для формы.
func (s *Service) Display(rec Record) map[string]string {
	return s.codec.EncodeForDisplay(rec)
}

// ListAll возвращает все записи без фильтрации.
func (s *Service) ListAll(ctx context.Context) ([]Record, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		s.log.Error("failed to list records", "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Find возвращает запись по идентификатору.
func (s *Service) Find(ctx context.Context, id int64) (Record, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("failed to find record", "record_id", id, "error", err)
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	return rec, nil
}

// Search сканирует индекс поля и оставляет записи, значение которых
// содержит term как подстроку без учета регистра. Пустой term эквивалентен
// ListAll.
func (s *Service) Search(ctx context.Context, field, term string) ([]Record, error) {
	if !s.schema.IsSearchField(field) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSearchField, field)
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListAll(ctx)
	}

	records, err := s.store.ScanIndex(ctx, field)
	if err != nil {
		s.log.Error("failed to scan index", "field", field, "error", err)
		return nil, fmt.Errorf("search records: %w", err)
	}

	needle := strings.ToLower(term)
	matched := make([]Record, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(Stringify(rec[field])), needle) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Save валидирует и сохраняет запись целиком: либо запись полностью
// проходит валидацию и пишется, либо не пишется ничего. При успехе
// возвращает запись с назначенным идентификатором и обнуленный сеанс.
func (s *Service) Save(ctx context.Context, values map[string]string, sess EditSession) (Record, EditSession, error) {
	var prev Record
	if sess.Editing() {
		var err error
		prev, err = s.store.GetByID(ctx, sess.BoundID)
		if err != nil {
			s.log.Error("failed to load record for update", "record_id", sess.BoundID, "error", err)
			return nil, sess, fmt.Errorf("load record for update: %w", err)
		}
	}

	rec, err := s.codec.DecodeForSave(values, sess, prev)
	if err != nil {
		return nil, sess, err
	}

	id, err := s.store.Put(ctx, rec)
	if err != nil {
		s.log.Error("failed to save record", "record_id", sess.BoundID, "error", err)
		return nil, sess, fmt.Errorf("save record: %w", err)
	}
	rec.SetID(s.schema, id)

	s.log.Info("record saved", "record_id", id, "created", !sess.Editing())
	return rec, EditSession{}, nil
}

// Remove удаляет запись. Подтверждение намерения - забота вызывающей
// стороны.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete record", "record_id", id, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}
	s.log.Info("record deleted", "record_id", id)
	return nil
}

// ExportAll сериализует все записи в читаемый JSON. Пустая коллекция -
// ErrNothingToExport, а не сбой.
func (s *Service) ExportAll(ctx context.Context) ([]byte, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		s.log.Error("failed to export records", "error", err)
		return nil, fmt.Errorf("export records: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export records: %w", err)
	}

	s.log.Info("records exported", "count", len(records))
	return data, nil
}

// ImportReplace разбирает снимок и атомарно замещает им коллекцию:
// очистка и вставки выполняются одним пакетом, сбой посреди импорта не
// оставляет хранилище пустым или полузаполненным. Отдельные записи против
// правил обязательности не перепроверяются - импорт доверяет форме снимка,
// но не содержимому.
func (s *Service) ImportReplace(ctx context.Context, snapshot []byte) (int, error) {
	var rows []map[string]any
	if err := json.Unmarshal(snapshot, &rows); err != nil {
		return 0, &ValidationError{Reason: ReasonNotASequence}
	}
	// JSON null разбирается в nil-срез без ошибки; массивом он не является.
	if rows == nil {
		return 0, &ValidationError{Reason: ReasonNotASequence}
	}

	count := 0
	err := s.store.Atomic(ctx, func(b Batch) error {
		if err := b.Clear(); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := b.Put(Record(row)); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		s.log.Error("failed to import records", "error", err)
		return 0, fmt.Errorf("import records: %w", err)
	}

	s.log.Info("records imported", "count", count)
	return count, nil
}
