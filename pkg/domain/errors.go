package domain

import "errors"

// ErrNodeNotFound is returned when a node id cannot be found in a document.
var ErrNodeNotFound = errors.New("node not found")

// ErrEdgeNotFound is returned when an edge id cannot be found in a document.
var ErrEdgeNotFound = errors.New("edge not found")

// ErrDocumentNotFound is returned when a document ID cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrEmptyDocumentID is returned by stores when asked to persist a document without an id.
var ErrEmptyDocumentID = errors.New("document id cannot be empty")
