package distance

import "context"

// Provider returns the travel distance in kilometres from one city to
// another. Implementations must be safe for concurrent use.
type Provider interface {
	Distance(ctx context.Context, from, to City) (float64, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, from, to City) (float64, error)

// Distance calls f.
func (f ProviderFunc) Distance(ctx context.Context, from, to City) (float64, error) {
	return f(ctx, from, to)
}

// Source names where a matrix entry came from.
type Source string

const (
	SourceMemo     Source = "memo"
	SourceCache    Source = "cache"
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)
