// Package sqlite реализует шлюз хранилища записей поверх SQLite.
// Записи хранятся JSON-документами, ключ - автоинкрементный суррогатный id;
// по каждому полю поиска создается неуникальный индекс по выражению
// json_extract.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"recordbase/internal/domain/record"
	"recordbase/internal/domain/schema"
)

// Store - SQLite-реализация record.Storer.
type Store struct {
	db     *sql.DB
	table  string
	schema *schema.Schema
	log    *slog.Logger
}

// Open идемпотентно открывает хранилище: создает таблицу записей, таблицу
// метаданных с версией схемы и индексы полей поиска, если их еще нет.
// Существующие данные при открытии не разрушаются. Имена таблицы и полей
// проверены валидацией схемы, поэтому подстановка их в SQL безопасна.
func Open(path, table string, version int, s *schema.Schema, log *slog.Logger) (*Store, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrStorageUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", record.ErrStorageUnavailable, err)
	}

	st := &Store{
		db:     db,
		table:  table,
		schema: s,
		log:    log.With("component", "sqlite_store"),
	}

	if err := st.provision(version); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", record.ErrStorageUnavailable, err)
	}

	st.log.Debug("хранилище открыто", "path", path, "table", table, "version", version)
	return st, nil
}

func (st *Store) provision(version int) error {
	_, err := st.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id  INTEGER PRIMARY KEY AUTOINCREMENT,
			doc TEXT NOT NULL
		)`, st.table))
	if err != nil {
		return err
	}

	_, err = st.db.Exec(`
		CREATE TABLE IF NOT EXISTS store_meta (
			name    TEXT PRIMARY KEY,
			version INTEGER NOT NULL
		)`)
	if err != nil {
		return err
	}

	// Провижининг индексов аддитивный: индексы не перестраиваются и не
	// удаляются.
	for _, field := range st.schema.SearchFields {
		stmt := fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (json_extract(doc, '$.%s'))`,
			st.table, field, st.table, field,
		)
		if _, err := st.db.Exec(stmt); err != nil {
			return err
		}
	}

	_, err = st.db.Exec(`
		INSERT INTO store_meta (name, version) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET version = excluded.version
		WHERE excluded.version > store_meta.version`,
		st.table, version)
	return err
}

// GetAll возвращает все записи в порядке идентификатора.
func (st *Store) GetAll(ctx context.Context) ([]record.Record, error) {
	rows, err := st.db.QueryContext(ctx,
		fmt.Sprintf("SELECT id, doc FROM %s ORDER BY id", st.table))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrStorageRead, err)
	}
	defer rows.Close()

	return st.collect(rows)
}

// GetByID возвращает запись или record.ErrNotFound.
func (st *Store) GetByID(ctx context.Context, id int64) (record.Record, error) {
	var doc string
	err := st.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT doc FROM %s WHERE id = ?", st.table), id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", record.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrStorageRead, err)
	}

	return st.decode(id, doc)
}

// Put выполняет upsert; при отсутствии идентификатора назначает следующий
// суррогатный ключ и возвращает его.
func (st *Store) Put(ctx context.Context, rec record.Record) (int64, error) {
	return st.put(ctx, st.db, rec)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (st *Store) put(ctx context.Context, ex execer, rec record.Record) (int64, error) {
	id, bound := rec.ID(st.schema)
	doc, err := st.encode(rec)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", record.ErrStorageWrite, err)
	}

	if bound {
		_, err := ex.ExecContext(ctx, fmt.Sprintf(`
			INSERT INTO %s (id, doc) VALUES (?, ?)
			ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`, st.table),
			id, doc)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", record.ErrStorageWrite, err)
		}
		return id, nil
	}

	res, err := ex.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (doc) VALUES (?)", st.table), doc)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", record.ErrStorageWrite, err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", record.ErrStorageWrite, err)
	}
	return newID, nil
}

// Delete удаляет запись; отсутствие id не считается ошибкой.
func (st *Store) Delete(ctx context.Context, id int64) error {
	_, err := st.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = ?", st.table), id)
	if err != nil {
		return fmt.Errorf("%w: %v", record.ErrStorageWrite, err)
	}
	return nil
}

// Clear удаляет все записи. Генератор ключей не сбрасывается.
func (st *Store) Clear(ctx context.Context) error {
	_, err := st.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", st.table))
	if err != nil {
		return fmt.Errorf("%w: %v", record.ErrStorageWrite, err)
	}
	return nil
}

// ScanIndex возвращает все записи, отсортированные по естественному
// порядку поля поиска.
func (st *Store) ScanIndex(ctx context.Context, field string) ([]record.Record, error) {
	if !st.schema.IsSearchField(field) {
		return nil, fmt.Errorf("%w: %s", record.ErrIndexNotFound, field)
	}

	rows, err := st.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT id, doc FROM %s ORDER BY json_extract(doc, '$.%s'), id",
		st.table, field))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrStorageRead, err)
	}
	defer rows.Close()

	return st.collect(rows)
}

// Atomic выполняет пакет записей в одной SQL-транзакции: либо фиксируются
// все эффекты, либо ни один.
func (st *Store) Atomic(ctx context.Context, fn func(record.Batch) error) error {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", record.ErrStorageWrite, err)
	}

	b := &batch{ctx: ctx, tx: tx, store: st}
	if err := fn(b); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			st.log.Error("не удалось откатить транзакцию", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", record.ErrStorageWrite, err)
	}
	return nil
}

// Close закрывает базу данных.
func (st *Store) Close() error {
	return st.db.Close()
}

type batch struct {
	ctx   context.Context
	tx    *sql.Tx
	store *Store
}

func (b *batch) Clear() error {
	_, err := b.tx.ExecContext(b.ctx, fmt.Sprintf("DELETE FROM %s", b.store.table))
	if err != nil {
		return fmt.Errorf("%w: %v", record.ErrStorageWrite, err)
	}
	return nil
}

func (b *batch) Put(rec record.Record) (int64, error) {
	return b.store.put(b.ctx, b.tx, rec)
}

// encode сериализует запись без поля-идентификатора: он хранится колонкой
// и возвращается в отображение при чтении.
func (st *Store) encode(rec record.Record) (string, error) {
	idField := st.schema.IDField()
	doc := make(map[string]any, len(rec))
	for k, v := range rec {
		if k == idField {
			continue
		}
		doc[k] = v
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (st *Store) decode(id int64, doc string) (record.Record, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(doc), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrStorageRead, err)
	}
	rec := record.Record(fields)
	rec.SetID(st.schema, id)
	return rec, nil
}

func (st *Store) collect(rows *sql.Rows) ([]record.Record, error) {
	records := make([]record.Record, 0)
	for rows.Next() {
		var (
			id  int64
			doc string
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", record.ErrStorageRead, err)
		}
		rec, err := st.decode(id, doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrStorageRead, err)
	}
	return records, nil
}
