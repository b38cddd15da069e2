package docstore

import (
	"context"
	"encoding/json"
	"time"

	"smartexam_backend/pkg/monitoring"
	"smartexam_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// instrumented bounds every call with a timeout and records a span and a
// latency observation per operation.
type instrumented struct {
	next    Store
	backend string
	timeout time.Duration
}

func Instrument(next Store, backend string, timeout time.Duration) Store {
	return &instrumented{next: next, backend: backend, timeout: timeout}
}

func (s *instrumented) begin(ctx context.Context, op, path string) (context.Context, func(error)) {
	ctx, span := tracing.Tracer.Start(ctx, "docstore."+op, trace.WithAttributes(
		attribute.String("docstore.backend", s.backend),
		attribute.String("docstore.path", path),
	))
	cancel := func() {}
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	start := time.Now()

	return ctx, func(err error) {
		cancel()
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		monitoring.StoreOpDuration.WithLabelValues(s.backend, op, outcome).Observe(time.Since(start).Seconds())
		span.End()
	}
}

func (s *instrumented) Get(ctx context.Context, path string, v interface{}) (found bool, err error) {
	ctx, done := s.begin(ctx, "get", path)
	defer func() { done(err) }()
	return s.next.Get(ctx, path, v)
}

func (s *instrumented) Set(ctx context.Context, path string, v interface{}) (err error) {
	ctx, done := s.begin(ctx, "set", path)
	defer func() { done(err) }()
	return s.next.Set(ctx, path, v)
}

func (s *instrumented) Update(ctx context.Context, path string, fields map[string]interface{}) (err error) {
	ctx, done := s.begin(ctx, "update", path)
	defer func() { done(err) }()
	return s.next.Update(ctx, path, fields)
}

func (s *instrumented) Delete(ctx context.Context, path string) (err error) {
	ctx, done := s.begin(ctx, "delete", path)
	defer func() { done(err) }()
	return s.next.Delete(ctx, path)
}

func (s *instrumented) Push(ctx context.Context, path string, v interface{}) (id string, err error) {
	ctx, done := s.begin(ctx, "push", path)
	defer func() { done(err) }()
	return s.next.Push(ctx, path, v)
}

func (s *instrumented) CreateIfAbsent(ctx context.Context, path string, v interface{}) (created bool, err error) {
	ctx, done := s.begin(ctx, "create_if_absent", path)
	defer func() { done(err) }()
	return s.next.CreateIfAbsent(ctx, path, v)
}

func (s *instrumented) Keys(ctx context.Context, path string) (keys []string, err error) {
	ctx, done := s.begin(ctx, "keys", path)
	defer func() { done(err) }()
	return s.next.Keys(ctx, path)
}

func (s *instrumented) List(ctx context.Context, path string) (docs map[string]json.RawMessage, err error) {
	ctx, done := s.begin(ctx, "list", path)
	defer func() { done(err) }()
	return s.next.List(ctx, path)
}

func (s *instrumented) Ping(ctx context.Context) (err error) {
	ctx, done := s.begin(ctx, "ping", "")
	defer func() { done(err) }()
	return s.next.Ping(ctx)
}
