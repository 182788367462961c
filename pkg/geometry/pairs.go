package geometry

import (
	"slices"
	"strings"

	"github.com/aretw0/valence/pkg/domain"
)

// CreatePairKey returns the order-independent key for two node ids.
func CreatePairKey(id1, id2 string) string {
	if id2 < id1 {
		id1, id2 = id2, id1
	}
	return id1 + domain.PairKeySeparator + id2
}

// ParsePairKey splits a pair key on its first separator.
// A key without a separator yields the whole key and an empty second id.
func ParsePairKey(key string) (string, string) {
	a, b, _ := strings.Cut(key, domain.PairKeySeparator)
	return a, b
}

// Pair is a parsed pair key. A sorts before B.
type Pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Key returns the pair key for p.
func (p Pair) Key() string {
	return CreatePairKey(p.A, p.B)
}

// Contains reports whether nodeID is one side of the pair.
func (p Pair) Contains(nodeID string) bool {
	return p.A == nodeID || p.B == nodeID
}

// PairSet is a set of pair keys.
type PairSet map[string]struct{}

// NewPairSet creates a set holding the given keys.
func NewPairSet(keys ...string) PairSet {
	s := make(PairSet, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts a key.
func (s PairSet) Add(key string) {
	s[key] = struct{}{}
}

// Has reports whether key is in the set.
func (s PairSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of pairs.
func (s PairSet) Len() int {
	return len(s)
}

// Keys returns the keys in sorted order.
func (s PairSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Pairs returns the parsed pairs sorted by key.
func (s PairSet) Pairs() []Pair {
	keys := s.Keys()
	out := make([]Pair, len(keys))
	for i, k := range keys {
		a, b := ParsePairKey(k)
		out[i] = Pair{A: a, B: b}
	}
	return out
}

// PairsFor returns the ids paired with nodeID, sorted.
func (s PairSet) PairsFor(nodeID string) []string {
	out := []string{}
	for k := range s {
		a, b := ParsePairKey(k)
		switch nodeID {
		case a:
			out = append(out, b)
		case b:
			out = append(out, a)
		}
	}
	slices.Sort(out)
	return out
}

// DiffPairs compares two pair sets. entered holds keys only in next, left holds
// keys only in prev. Both are sorted.
func DiffPairs(prev, next PairSet) (entered, left []string) {
	entered, left = []string{}, []string{}
	for k := range next {
		if !prev.Has(k) {
			entered = append(entered, k)
		}
	}
	for k := range prev {
		if !next.Has(k) {
			left = append(left, k)
		}
	}
	slices.Sort(entered)
	slices.Sort(left)
	return entered, left
}
