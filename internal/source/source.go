package source

import "context"

// Source gathers the records describing one cluster.
type Source interface {
	Fetch(ctx context.Context, cluster string) (*Bundle, error)
}
