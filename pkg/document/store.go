// Package document holds the canonical in-memory copy of a graph document.
//
// Store is the mutation target for commands: every change to nodes or edges
// flows through UpdateNodes and UpdateEdges as a copy-on-write transform.
package document

import (
	"sync"

	"github.com/aretw0/valence/pkg/domain"
)

// Store is a concurrency-safe holder for one document.
type Store struct {
	mu  sync.RWMutex
	doc domain.Document
}

// New creates a store seeded with a copy of doc.
func New(doc domain.Document) *Store {
	s := &Store{}
	s.Replace(doc)
	return s
}

// Replace swaps the whole document.
func (s *Store) Replace(doc domain.Document) {
	doc = doc.Clone()
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// ID returns the document id.
func (s *Store) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ID
}

// Nodes returns a copy of the node collection.
func (s *Store) Nodes() []domain.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNodes(s.doc.Nodes)
}

// Edges returns a copy of the edge collection.
func (s *Store) Edges() []domain.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Edge{}, s.doc.Edges...)
}

// Node returns a copy of the node with the given id.
func (s *Store) Node(id string) (domain.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.doc.Node(id)
	if !ok {
		return domain.Node{}, false
	}
	return n.Clone(), true
}

// Edge returns the edge with the given id.
func (s *Store) Edge(id string) (domain.Edge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.doc.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Edge{}, false
}

// ConnectedEdges returns the edges touching nodeID.
func (s *Store) ConnectedEdges(nodeID string) []domain.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ConnectedEdges(nodeID)
}

// UpdateNodes replaces the node collection with fn applied to a copy of it.
func (s *Store) UpdateNodes(fn func([]domain.Node) []domain.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(cloneNodes(s.doc.Nodes))
	if next == nil {
		next = []domain.Node{}
	}
	s.doc.Nodes = next
}

// UpdateEdges replaces the edge collection with fn applied to a copy of it.
func (s *Store) UpdateEdges(fn func([]domain.Edge) []domain.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(append([]domain.Edge{}, s.doc.Edges...))
	if next == nil {
		next = []domain.Edge{}
	}
	s.doc.Edges = next
}

func cloneNodes(nodes []domain.Node) []domain.Node {
	out := make([]domain.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
