package record

import "context"

// Storer - граница персистентности записей. Реализация владеет всеми
// сохраненными записями; сервис кэша не держит.
type Storer interface {
	// GetAll возвращает все записи; порядок не специфицирован, но
	// стабилен в пределах одного состояния хранилища.
	GetAll(ctx context.Context) ([]Record, error)
	// GetByID возвращает запись или ErrNotFound.
	GetByID(ctx context.Context, id int64) (Record, error)
	// Put выполняет upsert по идентификатору; при его отсутствии
	// назначает следующий суррогатный ключ и возвращает его.
	Put(ctx context.Context, rec Record) (int64, error)
	// Delete удаляет одну запись; отсутствие id - не ошибка.
	Delete(ctx context.Context, id int64) error
	// Clear удаляет все записи.
	Clear(ctx context.Context) error
	// ScanIndex возвращает все записи, отсортированные по естественному
	// порядку поля; ErrIndexNotFound для необъявленных полей поиска.
	ScanIndex(ctx context.Context, field string) ([]Record, error)
	// Atomic выполняет пакет записей так, что либо фиксируются все
	// эффекты, либо ни один; читатели не видят промежуточных состояний.
	Atomic(ctx context.Context, fn func(Batch) error) error

	Close() error
}

// Batch - операции записи, доступные внутри одного атомарного пакета.
type Batch interface {
	Clear() error
	Put(rec Record) (int64, error)
}
