package domain

// DataStatus enumerates states of a live-derived collection.
type DataStatus string

const (
	DataLoading DataStatus = "loading"
	DataReady   DataStatus = "ready"
	DataError   DataStatus = "error"
)

// DataState wraps a live collection so pages can render loading/error/ready
// uniformly. Data is retained across a loading transition to avoid flicker;
// an error state always carries empty data.
type DataState[T any] struct {
	Status DataStatus `json:"status"`
	Data   T          `json:"data"`
	Error  string     `json:"error,omitempty"`
}

// Loading reports whether the state is still resolving.
func (s DataState[T]) Loading() bool {
	return s.Status == DataLoading
}
