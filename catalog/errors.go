package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a product (or user) reference does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDimensionMismatch is returned when a query vector and a product vector differ in length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrZeroNorm is returned by CosineSimilarity when either vector has zero norm.
	ErrZeroNorm = errors.New("zero-norm vector")

	// ErrNonFinite is returned by CosineSimilarity when a vector holds NaN or Inf.
	ErrNonFinite = errors.New("non-finite vector component")
)

// UpstreamEmbeddingError wraps any failure of the embedding provider.
// A recommendation that hits it returns no partial ranking.
type UpstreamEmbeddingError struct {
	Err error
}

func (e *UpstreamEmbeddingError) Error() string {
	return fmt.Sprintf("upstream embedding error: %v", e.Err)
}

func (e *UpstreamEmbeddingError) Unwrap() error {
	return e.Err
}

// ValidationError describes a malformed filter or sort value.
// Parsing never surfaces it to callers; the offending value is dropped.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}
