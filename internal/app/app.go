// Package app собирает приложение: конфигурация, логгер, хранилище,
// кодек и сервис записей.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"recordbase/internal/config"
	"recordbase/internal/domain/record"
	"recordbase/internal/domain/schema"
	"recordbase/internal/infrastructure/storage/memory"
	"recordbase/internal/infrastructure/storage/sqlite"
)

type App struct {
	config  *config.Config
	log     *slog.Logger
	schema  *schema.Schema
	store   record.Storer
	service record.Servicer
	state   *State
	mu      sync.Mutex
}

// State хранит состояние приложения между запусками.
type State struct {
	RecordsCount int       `json:"records_count"`
	LastExport   time.Time `json:"last_export,omitempty"`
	LastImport   time.Time `json:"last_import,omitempty"`
}

// New создает приложение. Недоступность хранилища фатальна для сеанса:
// операции над записями без него невозможны.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	s, err := config.LoadSchema(cfg.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки схемы: %w", err)
	}

	var store record.Storer
	switch cfg.StorageDriver {
	case config.DriverMemory:
		store = memory.New(s)
	default:
		store, err = sqlite.Open(cfg.DataPath, cfg.StoreName, cfg.SchemaVersion, s, log)
		if err != nil {
			return nil, fmt.Errorf("ошибка открытия хранилища: %w", err)
		}
	}

	codec := record.NewCodec(s, cfg.MaxRecordDate)
	service := record.NewService(store, codec, s, log)

	state, err := loadState(cfg.StatePath)
	if err != nil {
		log.Warn("Не удалось загрузить состояние приложения", "error", err)
		state = &State{}
	}

	return &App{
		config:  cfg,
		log:     log,
		schema:  s,
		store:   store,
		service: service,
		state:   state,
	}, nil
}

// Schema возвращает схему записей.
func (a *App) Schema() *schema.Schema {
	return a.schema
}

// Service возвращает сервис записей.
func (a *App) Service() record.Servicer {
	return a.service
}

// ListRecords возвращает все записи.
func (a *App) ListRecords(ctx context.Context) ([]record.Record, error) {
	return a.service.ListAll(ctx)
}

// FindRecord возвращает запись по идентификатору.
func (a *App) FindRecord(ctx context.Context, id int64) (record.Record, error) {
	return a.service.Find(ctx, id)
}

// SearchRecords выполняет поиск по полю.
func (a *App) SearchRecords(ctx context.Context, field, term string) ([]record.Record, error) {
	return a.service.Search(ctx, field, term)
}

// SaveRecord сохраняет запись из значений формы.
func (a *App) SaveRecord(ctx context.Context, values map[string]string, sess record.EditSession) (record.Record, record.EditSession, error) {
	rec, next, err := a.service.Save(ctx, values, sess)
	if err != nil {
		return nil, next, err
	}
	a.refreshCount(ctx)
	return rec, next, nil
}

// DeleteRecord удаляет запись.
func (a *App) DeleteRecord(ctx context.Context, id int64) error {
	if err := a.service.Remove(ctx, id); err != nil {
		return err
	}
	a.refreshCount(ctx)
	return nil
}

// DisplayRecord возвращает строковое представление полей для вывода.
func (a *App) DisplayRecord(rec record.Record) map[string]string {
	return a.service.Display(rec)
}

// ExportToFile выгружает все записи в JSON-файл в каталоге dir. Имя файла
// включает текущую календарную дату. Пустая коллекция - это
// record.ErrNothingToExport, а не сбой.
func (a *App) ExportToFile(ctx context.Context, dir string) (string, error) {
	data, err := a.service.ExportAll(ctx)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_export_%s.json", a.config.StoreName, time.Now().Format("2006-01-02"))
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("ошибка записи файла экспорта: %w", err)
	}

	a.mu.Lock()
	a.state.LastExport = time.Now()
	a.mu.Unlock()
	a.saveState()

	return path, nil
}

// ImportFromFile атомарно замещает коллекцию содержимым JSON-файла и
// возвращает число импортированных записей.
func (a *App) ImportFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения файла импорта: %w", err)
	}

	count, err := a.service.ImportReplace(ctx, data)
	if err != nil {
		return 0, err
	}

	a.mu.Lock()
	a.state.LastImport = time.Now()
	a.state.RecordsCount = count
	a.mu.Unlock()
	a.saveState()

	return count, nil
}

// Close сохраняет состояние и закрывает хранилище.
func (a *App) Close() error {
	a.saveState()
	return a.store.Close()
}

func (a *App) refreshCount(ctx context.Context) {
	records, err := a.service.ListAll(ctx)
	if err != nil {
		return
	}
	a.mu.Lock()
	a.state.RecordsCount = len(records)
	a.mu.Unlock()
}

func (a *App) saveState() {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := json.MarshalIndent(a.state, "", "  ")
	if err != nil {
		a.log.Warn("Не удалось сериализовать состояние", "error", err)
		return
	}
	if err := os.WriteFile(a.config.StatePath, data, 0600); err != nil {
		a.log.Warn("Не удалось сохранить состояние", "error", err)
	}
}

func loadState(path string) (*State, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &State{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
