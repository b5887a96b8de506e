package parsing

// strategy is one named attempt in a fallback chain.
type strategy[T any] struct {
	name string
	run  func() (T, bool)
}

// firstMatch runs strategies in order and returns the first success along
// with the name of the strategy that produced it.
func firstMatch[T any](strategies []strategy[T]) (T, string, bool) {
	for _, s := range strategies {
		if v, ok := s.run(); ok {
			return v, s.name, true
		}
	}
	var zero T
	return zero, "", false
}
