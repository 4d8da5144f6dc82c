package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"recordbase/internal/domain/record"
	"recordbase/internal/domain/schema"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	st, err := Open(path, "records", 1, schema.Default(), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen_ProvisionIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	st := openTestStore(t, path)
	id, err := st.Put(ctx, record.Record{"name": "Widget"})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	// Повторное открытие не разрушает существующие данные.
	st2 := openTestStore(t, path)
	rec, err := st2.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Widget", rec["name"])
}

func TestOpen_InvalidSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	_, err := Open(path, "records", 1, &schema.Schema{}, slog.Default())
	assert.ErrorIs(t, err, record.ErrStorageUnavailable)
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	in := record.Record{
		"name":        "Widget",
		"description": nil,
		"category":    "Категория 1",
		"rating":      4.5,
		"createdAt":   "2024-06-15T00:00:00Z",
		"photo":       nil,
	}
	id, err := st.Put(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	rec, err := st.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Widget", rec["name"])
	assert.Equal(t, 4.5, rec["rating"])
	// null-значения сохраняются как явные null, а не пропадают.
	v, ok := rec["description"]
	assert.True(t, ok)
	assert.Nil(t, v)
	// Идентификатор возвращается внутри отображения.
	assert.Equal(t, int64(1), rec["id"])
}

func TestStore_PutPreservesExplicitID(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	id, err := st.Put(ctx, record.Record{"id": float64(42), "name": "Imported"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	rec, err := st.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Imported", rec["name"])
}

func TestStore_PutUpsert(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	id, err := st.Put(ctx, record.Record{"name": "Widget"})
	require.NoError(t, err)

	_, err = st.Put(ctx, record.Record{"id": id, "name": "Widget v2"})
	require.NoError(t, err)

	all, err := st.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Widget v2", all[0]["name"])
}

func TestStore_GetByID_NotFound(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))

	_, err := st.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	id, err := st.Put(ctx, record.Record{"name": "Widget"})
	require.NoError(t, err)

	require.NoError(t, st.Delete(ctx, id))
	require.NoError(t, st.Delete(ctx, id))
}

func TestStore_ScanIndex(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	for _, name := range []string{"гамма", "альфа", "бета"} {
		_, err := st.Put(ctx, record.Record{"name": name})
		require.NoError(t, err)
	}

	records, err := st.ScanIndex(ctx, "name")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "альфа", records[0]["name"])
	assert.Equal(t, "бета", records[1]["name"])
	assert.Equal(t, "гамма", records[2]["name"])
}

func TestStore_ScanIndex_UnknownField(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))

	_, err := st.ScanIndex(context.Background(), "rating")
	assert.ErrorIs(t, err, record.ErrIndexNotFound)
}

func TestStore_AtomicRollback(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	_, err := st.Put(ctx, record.Record{"name": "keep"})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = st.Atomic(ctx, func(b record.Batch) error {
		if err := b.Clear(); err != nil {
			return err
		}
		if _, err := b.Put(record.Record{"name": "partial"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := st.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0]["name"])
}

func TestStore_AtomicReplace(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	_, err := st.Put(ctx, record.Record{"name": "old"})
	require.NoError(t, err)

	err = st.Atomic(ctx, func(b record.Batch) error {
		if err := b.Clear(); err != nil {
			return err
		}
		for _, name := range []string{"x", "y"} {
			if _, err := b.Put(record.Record{"name": name}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	all, err := st.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_ExtraFieldsPassThrough(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	// Импортированные записи с лишними полями сохраняются как есть.
	id, err := st.Put(ctx, record.Record{"name": "Widget", "extra": "kept"})
	require.NoError(t, err)

	rec, err := st.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "kept", rec["extra"])
}
