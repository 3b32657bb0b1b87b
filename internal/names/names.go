// Package names compares player names the way the record store's collation
// does: case-insensitive and accent-insensitive. Player names appear both as
// document field values and as map keys, so every lookup that is keyed by a
// player name must go through this package rather than ==.
package names

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	mu  sync.Mutex
	col = collate.New(language.English, collate.Loose)
)

// Equal reports whether a and b name the same player, ignoring case,
// diacritics and width.
func Equal(a, b string) bool {
	mu.Lock()
	defer mu.Unlock()
	return col.CompareString(a, b) == 0
}

// Key returns a canonical grouping key for a player name. Two names that
// compare Equal produce the same key, so it is safe to use as a map key when
// aggregating per-player figures.
func Key(name string) string {
	mu.Lock()
	defer mu.Unlock()
	var buf collate.Buffer
	return string(col.KeyFromString(&buf, name))
}

// Lookup finds the value for name in a map keyed by raw player names,
// using collation-aware comparison. The second result reports whether a
// matching key was found.
func Lookup[V any](m map[string]V, name string) (V, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	for k, v := range m {
		if Equal(k, name) {
			return v, true
		}
	}
	var zero V
	return zero, false
}
