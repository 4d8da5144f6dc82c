// Package memory - хранилище записей в памяти. Используется как драйвер
// для одноразовых запусков и в тестах; семантика повторяет SQLite-шлюз,
// включая всё-или-ничего для атомарных пакетов.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"recordbase/internal/domain/record"
	"recordbase/internal/domain/schema"
)

// Store - реализация record.Storer в памяти.
type Store struct {
	mu      sync.RWMutex
	records map[int64]record.Record
	nextID  int64
	schema  *schema.Schema
}

// New создает пустое хранилище.
func New(s *schema.Schema) *Store {
	return &Store{
		records: make(map[int64]record.Record),
		schema:  s,
	}
}

// GetAll возвращает все записи в порядке идентификатора.
func (st *Store) GetAll(_ context.Context) ([]record.Record, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return st.snapshot(), nil
}

// GetByID возвращает запись или record.ErrNotFound.
func (st *Store) GetByID(_ context.Context, id int64) (record.Record, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	rec, ok := st.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", record.ErrNotFound, id)
	}
	return rec.Clone(), nil
}

// Put выполняет upsert; без идентификатора назначает следующий суррогатный
// ключ.
func (st *Store) Put(_ context.Context, rec record.Record) (int64, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	return put(st.schema, st.records, &st.nextID, rec), nil
}

// Delete удаляет запись; отсутствие id - не ошибка.
func (st *Store) Delete(_ context.Context, id int64) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	delete(st.records, id)
	return nil
}

// Clear удаляет все записи; генератор ключей не сбрасывается.
func (st *Store) Clear(_ context.Context) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.records = make(map[int64]record.Record)
	return nil
}

// ScanIndex возвращает все записи, отсортированные по естественному
// порядку поля поиска.
func (st *Store) ScanIndex(_ context.Context, field string) ([]record.Record, error) {
	if !st.schema.IsSearchField(field) {
		return nil, fmt.Errorf("%w: %s", record.ErrIndexNotFound, field)
	}

	st.mu.RLock()
	records := st.snapshot()
	st.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i][field], records[j][field])
	})
	return records, nil
}

// Atomic выполняет пакет над отложенной копией и подменяет состояние
// только при успехе: читатели не видят частично очищенного хранилища.
func (st *Store) Atomic(_ context.Context, fn func(record.Batch) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	staged := make(map[int64]record.Record, len(st.records))
	for id, rec := range st.records {
		staged[id] = rec.Clone()
	}
	nextID := st.nextID

	b := &batch{schema: st.schema, records: staged, nextID: &nextID}
	if err := fn(b); err != nil {
		return err
	}

	st.records = staged
	st.nextID = nextID
	return nil
}

// Close - no-op.
func (st *Store) Close() error {
	return nil
}

type batch struct {
	schema  *schema.Schema
	records map[int64]record.Record
	nextID  *int64
}

func (b *batch) Clear() error {
	for id := range b.records {
		delete(b.records, id)
	}
	return nil
}

func (b *batch) Put(rec record.Record) (int64, error) {
	return put(b.schema, b.records, b.nextID, rec), nil
}

func put(s *schema.Schema, records map[int64]record.Record, nextID *int64, rec record.Record) int64 {
	id, bound := rec.ID(s)
	if !bound {
		*nextID++
		id = *nextID
	} else if id > *nextID {
		*nextID = id
	}

	stored := rec.Clone()
	stored.SetID(s, id)
	records[id] = stored
	return id
}

func (st *Store) snapshot() []record.Record {
	ids := make([]int64, 0, len(st.records))
	for id := range st.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	records := make([]record.Record, 0, len(ids))
	for _, id := range ids {
		records = append(records, st.records[id].Clone())
	}
	return records
}

// less сравнивает значения поля: числа численно, остальное по строковому
// представлению; nil идет первым.
func less(a, b any) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af < bf
	}
	return record.Stringify(a) < record.Stringify(b)
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	}
	return 0, false
}
