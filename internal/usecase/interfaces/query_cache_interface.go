package interfaces

// IQueryCache keeps collection listings keyed by "<collection>:<filter>".
type IQueryCache interface {
	Get(key string) (any, bool)
	// Generation returns the invalidation counter of prefix. Read it before
	// querying the backend and hand it back to SetIfGeneration.
	Generation(prefix string) uint64
	// SetIfGeneration stores value under key unless prefix was invalidated
	// after gen was read. It reports whether the value was stored.
	SetIfGeneration(key string, value any, prefix string, gen uint64) bool
	// Invalidate drops every key starting with prefix.
	Invalidate(prefix string)
}
