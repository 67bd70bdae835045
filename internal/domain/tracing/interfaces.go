// tracing holds the ports for tying background work into whatever tracing
// backend is configured, without the domain knowing about it.
package tracing

import "context"

type Transaction interface {
	Context() context.Context
	End()
}

type Tracer interface {
	BackgroundTx(name string) Transaction
}
