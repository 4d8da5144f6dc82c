package record

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockStorer is a mock implementation of the Storer interface for testing
type MockStorer struct {
	mock.Mock
}

func (m *MockStorer) GetAll(ctx context.Context) ([]Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockStorer) GetByID(ctx context.Context, id int64) (Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Record), args.Error(1)
}

func (m *MockStorer) Put(ctx context.Context, rec Record) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorer) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorer) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorer) ScanIndex(ctx context.Context, field string) ([]Record, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockStorer) Atomic(ctx context.Context, fn func(Batch) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockStorer) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockBatch is a mock implementation of the Batch interface
type MockBatch struct {
	mock.Mock
}

func (m *MockBatch) Clear() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockBatch) Put(rec Record) (int64, error) {
	args := m.Called(rec)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(t *testing.T, store Storer) Servicer {
	t.Helper()
	s := testSchema()
	require.NoError(t, s.Validate())
	maxDate := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewService(store, NewCodec(s, maxDate), s, slog.Default())
}

func TestService_ListAll(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	records := []Record{
		{"id": int64(1), "name": "Widget"},
		{"id": int64(2), "name": "Gadget"},
	}
	store.On("GetAll", mock.Anything).Return(records, nil)

	got, err := service.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	store.AssertExpectations(t)
}

func TestService_Search(t *testing.T) {
	scanned := []Record{
		{"id": int64(1), "name": "Синий виджет"},
		{"id": int64(2), "name": "Красный гаджет"},
		{"id": int64(3), "name": nil},
	}

	tests := []struct {
		name    string
		field   string
		term    string
		wantIDs []int64
	}{
		{
			name:    "case-insensitive substring",
			field:   "name",
			term:    "ВИДЖ",
			wantIDs: []int64{1},
		},
		{
			name:    "no matches",
			field:   "name",
			term:    "зеленый",
			wantIDs: []int64{},
		},
		{
			name:    "null values never match",
			field:   "name",
			term:    "nil",
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStorer)
			service := newTestService(t, store)
			store.On("ScanIndex", mock.Anything, tt.field).Return(scanned, nil)

			got, err := service.Search(context.Background(), tt.field, tt.term)
			require.NoError(t, err)

			ids := make([]int64, 0, len(got))
			for _, rec := range got {
				ids = append(ids, rec["id"].(int64))
			}
			assert.Equal(t, tt.wantIDs, ids)
			store.AssertExpectations(t)
		})
	}
}

func TestService_Search_EmptyTermListsAll(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	all := []Record{{"id": int64(1), "name": "Widget"}}
	store.On("GetAll", mock.Anything).Return(all, nil)

	got, err := service.Search(context.Background(), "name", "   ")
	require.NoError(t, err)
	assert.Equal(t, all, got)

	store.AssertNotCalled(t, "ScanIndex", mock.Anything, mock.Anything)
}

func TestService_Search_InvalidField(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	_, err := service.Search(context.Background(), "rating", "4")
	assert.ErrorIs(t, err, ErrInvalidSearchField)

	_, err = service.Search(context.Background(), "id", "1")
	assert.ErrorIs(t, err, ErrInvalidSearchField)

	store.AssertNotCalled(t, "ScanIndex", mock.Anything, mock.Anything)
}

func TestService_Save_Create(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	store.On("Put", mock.Anything, mock.Anything).Return(int64(1), nil)

	rec, sess, err := service.Save(context.Background(), map[string]string{
		"name":   "Widget",
		"rating": "4",
	}, EditSession{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), rec["id"])
	assert.Equal(t, "Widget", rec["name"])
	assert.Equal(t, 4.0, rec["rating"])
	assert.Equal(t, EditSession{}, sess)

	store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestService_Save_Update(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	prev := Record{"id": int64(5), "name": "Widget", "photo": "data:image/png;base64,AAAA"}
	store.On("GetByID", mock.Anything, int64(5)).Return(prev, nil)
	store.On("Put", mock.Anything, mock.MatchedBy(func(rec Record) bool {
		// Несвязанное изображение переносится из сохраненной записи.
		return rec["photo"] == "data:image/png;base64,AAAA"
	})).Return(int64(5), nil)

	rec, sess, err := service.Save(context.Background(), map[string]string{
		"name": "Widget v2",
	}, EditSession{BoundID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), rec["id"])
	assert.Equal(t, EditSession{}, sess)

	store.AssertExpectations(t)
}

func TestService_Save_ValidationFailureWritesNothing(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	_, sess, err := service.Save(context.Background(), map[string]string{
		"rating": "4",
	}, EditSession{})

	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonMissingRequired, ve.Reason)
	// Сеанс возвращается как был - форма сохраняется для исправления.
	assert.Equal(t, EditSession{}, sess)

	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestService_Remove(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	store.On("Delete", mock.Anything, int64(3)).Return(nil)

	require.NoError(t, service.Remove(context.Background(), 3))
	store.AssertExpectations(t)
}

func TestService_ExportAll(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	records := []Record{
		{"id": int64(1), "name": "Widget", "description": nil},
	}
	store.On("GetAll", mock.Anything).Return(records, nil)

	data, err := service.ExportAll(context.Background())
	require.NoError(t, err)

	var back []map[string]any
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, "Widget", back[0]["name"])
	// null-значения попадают в снимок, а не опускаются.
	v, ok := back[0]["description"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestService_ExportAll_Empty(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	store.On("GetAll", mock.Anything).Return([]Record{}, nil)

	_, err := service.ExportAll(context.Background())
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestService_ImportReplace_NotASequence(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	_, err := service.ImportReplace(context.Background(), []byte(`{"name":"Widget"}`))

	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNotASequence, ve.Reason)
	// Атомарный пакет даже не начинается - хранилище не тронуто.
	store.AssertNotCalled(t, "Atomic", mock.Anything, mock.Anything)
}

func TestService_ImportReplace_NullSnapshot(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	// JSON null - корректный JSON, но не массив записей.
	_, err := service.ImportReplace(context.Background(), []byte(`null`))

	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNotASequence, ve.Reason)
	// Коллекция не очищается - атомарный пакет даже не начинается.
	store.AssertNotCalled(t, "Atomic", mock.Anything, mock.Anything)
}

func TestService_ImportReplace(t *testing.T) {
	store := new(MockStorer)
	service := newTestService(t, store)

	batch := new(MockBatch)
	batch.On("Clear").Return(nil)
	batch.On("Put", mock.Anything).Return(int64(1), nil)

	store.On("Atomic", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		fn := args.Get(1).(func(Batch) error)
		require.NoError(t, fn(batch))
	}).Return(nil)

	count, err := service.ImportReplace(context.Background(), []byte(`[{"id":1,"name":"Widget"},{"id":2,"name":"Gadget"}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	batch.AssertNumberOfCalls(t, "Put", 2)
	batch.AssertExpectations(t)
	store.AssertExpectations(t)
}
