package domain

// Product is owned by the catalog service; this service only ever reads it.
type Product struct {
	ID    string
	Name  string
	Price float64
	Image string
}

// PricedItem is a cart line enriched with catalog data. Price and Total are
// NaN when the referenced product does not exist in the catalog.
type PricedItem struct {
	ProductID string
	Quantity  int
	Price     float64
	Name      string
	Image     string
	Total     float64
}

type PricedCart struct {
	ID    string
	Items []PricedItem
	Total float64
}
