package domain

// Keyed is anything a store can index: the key is the product id for most entities
// and the inquiry id for inquiries.
type Keyed interface {
	Key() string
}

// Publisher is an outbound connector (console, file, GUI sink).
type Publisher[V any] interface {
	Publish(v V) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc[V any] func(v V) error

func (f PublisherFunc[V]) Publish(v V) error {
	return f(v)
}

// ProductRepository defines how product reference data is mirrored outside the universe service
type ProductRepository interface {
	UpsertProduct(info *ProductInfo) error
	GetProduct(id string) (*ProductInfo, error)
}

// HistoryIndex receives every history line so snapshots can be queried by kind and key
type HistoryIndex interface {
	SaveHistory(rec *HistoryRecord) error
}
