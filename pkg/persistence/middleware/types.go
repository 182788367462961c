package middleware

import "github.com/aretw0/valence/pkg/ports"

// Middleware allows wrapping a DocumentStore to add behavior.
type Middleware func(ports.DocumentStore) ports.DocumentStore

// Wrap applies mws to store. The first middleware is the outermost, so it
// sees a document first on Save and last on Load.
func Wrap(store ports.DocumentStore, mws ...Middleware) ports.DocumentStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
