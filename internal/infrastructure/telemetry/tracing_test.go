package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// installSpanRecorder swaps the global tracer provider for an in-memory
// recorder and restores the previous one when the test ends.
func installSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})

	return sr
}

// onlyEndedSpan asserts exactly one span finished and returns it
func onlyEndedSpan(t *testing.T, sr *tracetest.SpanRecorder) sdktrace.ReadOnlySpan {
	t.Helper()
	spans := sr.Ended()
	require.Len(t, spans, 1)
	return spans[0]
}

func attributeMap(attrs []attribute.KeyValue) map[string]interface{} {
	m := make(map[string]interface{}, len(attrs))
	for _, attr := range attrs {
		m[string(attr.Key)] = attr.Value.AsInterface()
	}
	return m
}

func TestStartSpan(t *testing.T) {
	t.Run("defaults to internal kind", func(t *testing.T) {
		sr := installSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "schema.validate")
		require.NotNil(t, span)
		span.End()

		got := onlyEndedSpan(t, sr)
		assert.Equal(t, "schema.validate", got.Name())
		assert.Equal(t, trace.SpanKindInternal, got.SpanKind())
	})

	t.Run("options set kind and attributes", func(t *testing.T) {
		sr := installSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "schema.validate",
			telemetry.WithAttribute("field_count", 7),
			telemetry.WithSpanKind(trace.SpanKindClient),
		)
		span.End()

		got := onlyEndedSpan(t, sr)
		assert.Equal(t, trace.SpanKindClient, got.SpanKind())
		assert.Equal(t, int64(7), attributeMap(got.Attributes())["field_count"])
	})
}

func TestStartServiceSpan(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "finance_record", "create")
	span.End()

	assert.Equal(t, "finance_record.create", onlyEndedSpan(t, sr).Name())
}

func TestSetAttributes(t *testing.T) {
	t.Run("alternating pairs", func(t *testing.T) {
		sr := installSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "record.submit")
		telemetry.SetAttributes(span,
			"record_type", "expense",
			"field_count", 42,
			"requires_approval", true,
		)
		span.End()

		attrs := attributeMap(onlyEndedSpan(t, sr).Attributes())
		assert.Equal(t, "expense", attrs["record_type"])
		assert.Equal(t, int64(42), attrs["field_count"])
		assert.Equal(t, true, attrs["requires_approval"])
	})

	t.Run("orphan trailing key is dropped", func(t *testing.T) {
		sr := installSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "record.submit")
		telemetry.SetAttributes(span, "key1", "value1", "key2", "value2", "orphan")
		span.End()

		assert.Len(t, onlyEndedSpan(t, sr).Attributes(), 2)
	})

	t.Run("non-string key is skipped", func(t *testing.T) {
		sr := installSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "record.submit")
		telemetry.SetAttributes(span, "valid_key", "value", 123, "ignored")
		span.End()

		assert.Len(t, onlyEndedSpan(t, sr).Attributes(), 1)
	})

	t.Run("every supported value type converts", func(t *testing.T) {
		sr := installSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "record.submit")
		telemetry.SetAttributes(span,
			"string", "value",
			"int", 42,
			"int64", int64(100),
			"float64", 3.14,
			"bool", true,
			"string_slice", []string{"a", "b"},
			"int_slice", []int{1, 2, 3},
			"int64_slice", []int64{10, 20},
			"float64_slice", []float64{1.1, 2.2},
			"bool_slice", []bool{true, false},
		)
		span.End()

		assert.GreaterOrEqual(t, len(onlyEndedSpan(t, sr).Attributes()), 10)
	})
}

func TestSetAttribute(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "record.load")

	// UUID takes the fmt.Stringer conversion path
	recordID := uuid.New()
	telemetry.SetAttribute(span, "record_id", recordID)
	span.End()

	attrs := attributeMap(onlyEndedSpan(t, sr).Attributes())
	assert.Equal(t, recordID.String(), attrs["record_id"])
}

func TestRecordError(t *testing.T) {
	t.Run("sets error status and exception event", func(t *testing.T) {
		sr := installSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "record.save")
		telemetry.RecordError(span, errors.New("version conflict"))
		span.End()

		got := onlyEndedSpan(t, sr)
		assert.Equal(t, codes.Error, got.Status().Code)
		assert.Equal(t, "version conflict", got.Status().Description)

		events := got.Events()
		require.NotEmpty(t, events)
		assert.Equal(t, "exception", events[0].Name)
	})

	t.Run("nil error leaves status untouched", func(t *testing.T) {
		sr := installSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "record.save")
		telemetry.RecordError(span, nil)
		span.End()

		assert.NotEqual(t, codes.Error, onlyEndedSpan(t, sr).Status().Code)
	})
}

func TestSetOK(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "record.save")
	telemetry.SetOK(span)
	span.End()

	assert.Equal(t, codes.Ok, onlyEndedSpan(t, sr).Status().Code)
}

func TestAddEvent(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "record.save")
	telemetry.AddEvent(span, "formulas_evaluated",
		"record_id", "rec-123",
		"formula_count", 3,
	)
	span.End()

	events := onlyEndedSpan(t, sr).Events()
	require.Len(t, events, 1)
	assert.Equal(t, "formulas_evaluated", events[0].Name)

	attrs := attributeMap(events[0].Attributes)
	assert.Equal(t, "rec-123", attrs["record_id"])
	assert.Equal(t, int64(3), attrs["formula_count"])
}

func TestNilSpanHelpers(t *testing.T) {
	// None of the helpers may panic on a nil span
	telemetry.SetAttributes(nil, "key", "value")
	telemetry.SetAttribute(nil, "key", "value")
	telemetry.RecordError(nil, errors.New("boom"))
	telemetry.SetOK(nil)
	telemetry.AddEvent(nil, "event", "key", "value")
}

func TestSpanContextHelpers(t *testing.T) {
	installSpanRecorder(t)
	ctx := context.Background()

	// Without a span the IDs are empty and SpanFromContext is a usable no-op
	assert.Empty(t, telemetry.GetTraceID(ctx))
	assert.Empty(t, telemetry.GetSpanID(ctx))
	assert.NotNil(t, telemetry.SpanFromContext(ctx))

	ctx, span := telemetry.StartSpan(ctx, "record.load")
	defer span.End()

	assert.Len(t, telemetry.GetTraceID(ctx), 32)
	assert.Len(t, telemetry.GetSpanID(ctx), 16)

	retrieved := telemetry.SpanFromContext(ctx)
	assert.Equal(t, span.SpanContext().SpanID(), retrieved.SpanContext().SpanID())

	reattached := telemetry.ContextWithSpan(context.Background(), span)
	assert.Equal(t, span.SpanContext().SpanID(),
		telemetry.SpanFromContext(reattached).SpanContext().SpanID())
}

func TestNestedSpans(t *testing.T) {
	sr := installSpanRecorder(t)

	ctx, parent := telemetry.StartSpan(context.Background(), "record.create")
	_, child := telemetry.StartSpan(ctx, "record.create.validate")
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)

	byName := make(map[string]sdktrace.ReadOnlySpan, len(spans))
	for _, s := range spans {
		byName[s.Name()] = s
	}
	parentSpan, ok := byName["record.create"]
	require.True(t, ok, "parent span not recorded")
	childSpan, ok := byName["record.create.validate"]
	require.True(t, ok, "child span not recorded")

	assert.Equal(t, parentSpan.SpanContext().TraceID(), childSpan.SpanContext().TraceID())
	assert.Equal(t, parentSpan.SpanContext().SpanID(), childSpan.Parent().SpanID())
}
