package catalog

import "context"

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"inStock"`
}

// Patch carries the fields of a partial update. A nil field means
// "keep the stored value".
type Patch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	InStock     *bool
}

type Store interface {
	// List returns products in insertion order, optionally restricted
	// to one category ("" means all).
	List(ctx context.Context, category string) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
	// SearchName matches product names case-insensitively by substring.
	// An empty query matches everything.
	SearchName(ctx context.Context, query string) ([]Product, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	Create(ctx context.Context, p Product) error
	Update(ctx context.Context, id string, patch Patch) (Product, bool, error)
	Delete(ctx context.Context, id string) (Product, bool, error)
	Ping(ctx context.Context) error
}
