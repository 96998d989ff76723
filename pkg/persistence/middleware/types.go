// Package middleware provides composable wrappers around an OperationStore,
// for studios that persist deformer history in shared infrastructure.
package middleware

import "github.com/Ernest-Sab/IPR-Tool/pkg/ports"

// Middleware allows wrapping an OperationStore to add behavior.
type Middleware func(ports.OperationStore) ports.OperationStore

// Chain applies middlewares left to right: the first one sees calls first.
func Chain(store ports.OperationStore, mws ...Middleware) ports.OperationStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
