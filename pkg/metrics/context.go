package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

type newRelicContextKey struct{}

// NewRelicContextKey is the context key holding the *newrelic.Application
// used by RecordDuration and RecordEvent.
var NewRelicContextKey = newRelicContextKey{}

// NewContext returns a copy of ctx carrying both the application and a newly
// started transaction, so method traces and custom metrics are recorded. The
// returned function ends the transaction. A nil app leaves ctx untouched.
func NewContext(ctx context.Context, app *newrelic.Application, txnName string) (context.Context, func()) {
	if app == nil {
		return ctx, func() {}
	}

	txn := app.StartTransaction(txnName)
	ctx = context.WithValue(ctx, NewRelicContextKey, app)
	ctx = newrelic.NewContext(ctx, txn)
	return ctx, txn.End
}
