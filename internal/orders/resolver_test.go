package orders

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/menu"
	"voice-order-workers/internal/models"
	"voice-order-workers/internal/nlu/extract"
)

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

type failingStore struct {
	Store
	err error
}

func (s failingStore) Create(context.Context, models.Order) (models.Order, error) {
	return models.Order{}, s.err
}

func newTestResolver(t *testing.T, store Store) *Resolver {
	settings := menu.Default()
	return NewResolver(store, extract.NewNameExtractor(settings), ResolverConfig{
		ETA: settings.ETA(),
		IDs: NewIDGenerator(settings.Numerals()),
		Now: func() time.Time { return fixedNow },
	}, logger.NewTestLogger(t))
}

func newTempFileStore(t *testing.T) *FileStore {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)
	return store
}

// ==========================
// Commit
// ==========================

func TestResolver_Commit(t *testing.T) {
	ctx := context.Background()
	store := newTempFileStore(t)
	r := newTestResolver(t, store)

	order, err := r.Commit(ctx, "سامي", []string{"بيتزا", "برجر"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "سامي", order.Name)
	assert.Equal(t, []string{"بيتزا", "برجر"}, order.Items)
	assert.Equal(t, "15 دقيقة", order.ETA)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "2024-05-01T12:30:00Z", order.Timestamp)
	assert.True(t, r.config.IDs.Valid(order.OrderID), "id %q", order.OrderID)

	stored, err := store.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order, stored)
}

func TestResolver_Commit_NameFromHistory(t *testing.T) {
	r := newTestResolver(t, newTempFileStore(t))

	history := []string{"اسمي خالد", "مرحبا", "اسمي سامي وبدي بيتزا"}
	order, err := r.Commit(context.Background(), "  ", []string{"بيتزا"}, history)

	require.NoError(t, err)
	assert.Equal(t, "سامي", order.Name)
}

func TestResolver_Commit_MissingName(t *testing.T) {
	ctx := context.Background()
	store := newTempFileStore(t)
	r := newTestResolver(t, store)

	_, err := r.Commit(ctx, "", []string{"بيتزا"}, []string{"بدي بيتزا"})
	assert.ErrorIs(t, err, ErrMissingName)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestResolver_Commit_StoreFailure(t *testing.T) {
	r := newTestResolver(t, failingStore{err: storeErr("insert", errors.New("disk full"))})

	_, err := r.Commit(context.Background(), "سامي", []string{"بيتزا"}, nil)
	assert.ErrorIs(t, err, ErrStoreFailure)
	assert.Contains(t, err.Error(), "disk full")
}

func TestResolver_Commit_CopiesItems(t *testing.T) {
	r := newTestResolver(t, newTempFileStore(t))
	items := []string{"فلافل"}

	order, err := r.Commit(context.Background(), "سامي", items, nil)
	require.NoError(t, err)

	items[0] = "changed"
	assert.Equal(t, []string{"فلافل"}, order.Items)
}

// ==========================
// IDs and replies
// ==========================

func TestIDGenerator(t *testing.T) {
	gen := NewIDGenerator(menu.Default().Numerals())

	for i := 0; i < 50; i++ {
		id := gen.Next()
		assert.True(t, gen.Valid(id), "id %q", id)
	}

	gen.intn = func(int) int { return 3 }
	assert.Equal(t, "٣٣٣٣٣", gen.Next())

	assert.False(t, gen.Valid("12345"))
	assert.False(t, gen.Valid("١٢٣٤"))
	assert.False(t, gen.Valid("١٢٣٤٥٦"))
}

func TestConfirmationReply(t *testing.T) {
	order := models.Order{OrderID: "١٢٣٤٥", ETA: "15 دقيقة", Items: []string{"بيتزا", "برجر"}}
	assert.Equal(t, "تم استلام طلبك (بيتزا, برجر)! رقم الطلب: ١٢٣٤٥, الوقت المتوقع: 15 دقيقة", ConfirmationReply(order))

	order.Items = nil
	assert.Equal(t, "تم استلام طلبك! رقم الطلب: ١٢٣٤٥, الوقت المتوقع: 15 دقيقة", ConfirmationReply(order))
}

func TestFilterByName(t *testing.T) {
	all := []models.Order{{OrderID: "١", Name: "سامي"}, {OrderID: "٢", Name: "خالد"}, {OrderID: "٣", Name: "سامي"}}

	got := FilterByName(all, " سامي ")
	require.Len(t, got, 2)
	assert.Equal(t, "١", got[0].OrderID)
	assert.Equal(t, "٣", got[1].OrderID)
	assert.NotNil(t, FilterByName(all, "ليلى"))
}
