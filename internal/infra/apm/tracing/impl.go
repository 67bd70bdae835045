package tracing

import (
	"context"

	"go.elastic.co/apm"

	"github.com/openrds/depositsync/internal/domain/tracing"
)

// NewTracer returns a thin wrapper around APM's tracing implementation
func NewTracer() tracing.Tracer {
	return &tracerImpl{getApmTracer: func() *apm.Tracer {
		return apm.DefaultTracer
	}}
}

type transactionImpl struct {
	apmTx *apm.Transaction
}

func (t *transactionImpl) Context() context.Context {
	return apm.ContextWithTransaction(context.Background(), t.apmTx)
}

func (t *transactionImpl) End() {
	t.apmTx.End()
}

type tracerImpl struct {
	getApmTracer func() *apm.Tracer
}

func (t *tracerImpl) BackgroundTx(name string) tracing.Transaction {
	tracer := t.getApmTracer()
	tx := tracer.StartTransaction(name, "backgroundjob")
	return &transactionImpl{apmTx: tx}
}

// <--- For testing

type noopTx struct{}

func (n noopTx) Context() context.Context {
	return context.Background()
}

func (n noopTx) End() {
}

type NoopTracer struct{}

func (n NoopTracer) BackgroundTx(name string) tracing.Transaction {
	return noopTx{}
}

// For testing --->
