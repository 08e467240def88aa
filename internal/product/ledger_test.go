package product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStockStore struct {
	levels map[string]*StockLevel
	writes []StockLevel
	err    error
}

func newFakeStockStore(levels ...StockLevel) *fakeStockStore {
	s := &fakeStockStore{levels: map[string]*StockLevel{}}
	for i := range levels {
		l := levels[i]
		s.levels[l.Name] = &l
	}
	return s
}

func (s *fakeStockStore) FindStockForUpdate(ctx context.Context, name string) (*StockLevel, error) {
	if s.err != nil {
		return nil, s.err
	}
	l, ok := s.levels[name]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (s *fakeStockStore) SetStock(ctx context.Context, id int64, stock int, status string) error {
	for _, l := range s.levels {
		if l.ID == id {
			l.Stock = stock
			l.Status = status
			s.writes = append(s.writes, *l)
		}
	}
	return nil
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("DecrementsInOrder", func(t *testing.T) {
		store := newFakeStockStore(
			StockLevel{ID: 1, Name: "Mug", Stock: 10, Status: "Available"},
			StockLevel{ID: 2, Name: "Tee", Stock: 4, Status: "Available"},
		)

		err := AdjustStock(ctx, store, []StockLine{{Name: "Tee", Quantity: 1}, {Name: "Mug", Quantity: 3}})
		require.NoError(t, err)

		require.Len(t, store.writes, 2)
		assert.Equal(t, "Tee", store.writes[0].Name)
		assert.Equal(t, 3, store.writes[0].Stock)
		assert.Equal(t, "Mug", store.writes[1].Name)
		assert.Equal(t, 7, store.writes[1].Stock)
		assert.Equal(t, "Available", store.writes[1].Status)
	})

	t.Run("ExactStockMarksNotAvailable", func(t *testing.T) {
		store := newFakeStockStore(StockLevel{ID: 1, Name: "Mug", Stock: 2, Status: "Available"})

		require.NoError(t, AdjustStock(ctx, store, []StockLine{{Name: "Mug", Quantity: 2}}))

		assert.Equal(t, 0, store.levels["Mug"].Stock)
		assert.Equal(t, StatusNotAvailable, store.levels["Mug"].Status)
	})

	t.Run("KeepsStatusWhenStockRemains", func(t *testing.T) {
		store := newFakeStockStore(StockLevel{ID: 1, Name: "Mug", Stock: 5, Status: "Discontinued"})

		require.NoError(t, AdjustStock(ctx, store, []StockLine{{Name: "Mug", Quantity: 1}}))

		assert.Equal(t, "Discontinued", store.levels["Mug"].Status)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		store := newFakeStockStore(StockLevel{ID: 1, Name: "Mug", Stock: 5})

		err := AdjustStock(ctx, store, []StockLine{{Name: "Mug", Quantity: 1}, {Name: "Ghost", Quantity: 1}})

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Ghost", nf.Name)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		store := newFakeStockStore(StockLevel{ID: 1, Name: "Mug", Stock: 2})

		err := AdjustStock(ctx, store, []StockLine{{Name: "Mug", Quantity: 5}})

		var ise *InsufficientStockError
		require.ErrorAs(t, err, &ise)
		assert.Equal(t, "Mug", ise.Name)
		assert.Equal(t, 5, ise.Requested)
		assert.Equal(t, 2, ise.Available)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Empty(t, store.writes)
		assert.Equal(t, 2, store.levels["Mug"].Stock)
	})

	t.Run("StoreError", func(t *testing.T) {
		store := newFakeStockStore()
		store.err = errors.New("conn reset")

		err := AdjustStock(ctx, store, []StockLine{{Name: "Mug", Quantity: 1}})

		assert.ErrorIs(t, err, store.err)
		assert.NotErrorIs(t, err, ErrProductNotFound)
	})
}
