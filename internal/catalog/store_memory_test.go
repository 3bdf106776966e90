package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *MemStore, products ...Product) {
	t.Helper()
	for _, p := range products {
		require.NoError(t, s.Create(context.Background(), p))
	}
}

func TestMemStore_DeleteKeepsOrder(t *testing.T) {
	s := NewMemStore()
	seed(t, s,
		Product{ID: "p_1", Name: "A", Category: "tools"},
		Product{ID: "p_2", Name: "B", Category: "tools"},
		Product{ID: "p_3", Name: "C", Category: "tools"},
	)

	_, ok, err := s.Delete(context.Background(), "p_2")
	require.NoError(t, err)
	require.True(t, ok)

	out, err := s.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "p_1", out[0].ID)
	require.Equal(t, "p_3", out[1].ID)

	_, ok, err = s.Get(context.Background(), "p_2")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemStore_UpdateAppliesOnlyPatchedFields(t *testing.T) {
	s := NewMemStore()
	seed(t, s, Product{
		ID: "p_1", Name: "Hammer", Description: "a hammer",
		Price: 10, Category: "tools", InStock: true,
	})

	price := 12.5
	inStock := false
	got, ok, err := s.Update(context.Background(), "p_1", Patch{Price: &price, InStock: &inStock})
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, 12.5, got.Price)
	require.False(t, got.InStock)
	require.Equal(t, "Hammer", got.Name)
	require.Equal(t, "a hammer", got.Description)
	require.Equal(t, "tools", got.Category)

	_, ok, err = s.Update(context.Background(), "p_missing", Patch{Price: &price})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemStore_SearchName(t *testing.T) {
	s := NewMemStore()
	seed(t, s,
		Product{ID: "p_1", Name: "Widget-1"},
		Product{ID: "p_2", Name: "widgetron"},
		Product{ID: "p_3", Name: "Bolt"},
	)

	out, err := s.SearchName(context.Background(), "WIDGET")
	require.NoError(t, err)
	require.Len(t, out, 2)

	out, err = s.SearchName(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, out, 3)
}

func TestMemStore_CountByCategory(t *testing.T) {
	s := NewMemStore()
	seed(t, s,
		Product{ID: "p_1", Category: "tools"},
		Product{ID: "p_2", Category: "tools"},
		Product{ID: "p_3", Category: "parts"},
	)

	counts, err := s.CountByCategory(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]int{"tools": 2, "parts": 1}, counts)
}

func TestMemStore_ListFiltersCategory(t *testing.T) {
	s := NewMemStore()
	seed(t, s,
		Product{ID: "p_1", Category: "tools"},
		Product{ID: "p_2", Category: "parts"},
	)

	out, err := s.List(context.Background(), "parts")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "p_2", out[0].ID)
}
