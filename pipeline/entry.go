package pipeline

import "fmt"

// Entry is one (key, value) element of a pipeline.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// String returns a human-readable representation: "key: value".
func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%v: %v", e.Key, e.Value)
}
