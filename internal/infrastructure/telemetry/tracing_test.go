package telemetry

import (
	"context"
	"errors"
	"testing"

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

// withRecordingTracer installs an in-memory exporter as the global tracer
// provider for the duration of a test.
func withRecordingTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = provider.Shutdown(context.Background())
	})
	return exporter
}

func TestStartSpan(t *testing.T) {
	t.Run("records the span name and attributes", func(t *testing.T) {
		exporter := withRecordingTracer(t)

		_, span := StartSpan(context.Background(), "product.create",
			WithAttribute(SpanAttrCategoryID, uuid.New()))
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, "product.create", spans[0].Name)
		assert.Len(t, spans[0].Attributes, 1)
		assert.Equal(t, attribute.Key(SpanAttrCategoryID), spans[0].Attributes[0].Key)
	})

	t.Run("defaults to an internal span", func(t *testing.T) {
		exporter := withRecordingTracer(t)

		_, span := StartSpan(context.Background(), "review.submit")
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind)
	})
}

func TestStartServiceSpan(t *testing.T) {
	exporter := withRecordingTracer(t)

	_, span := StartServiceSpan(context.Background(), "stats", "top_selling")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "stats.top_selling", spans[0].Name)
}

func TestRecordError(t *testing.T) {
	t.Run("marks the span as failed", func(t *testing.T) {
		exporter := withRecordingTracer(t)

		_, span := StartSpan(context.Background(), "product.purge")
		RecordError(span, errors.New("boom"))
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "boom", spans[0].Status.Description)
		require.Len(t, spans[0].Events, 1)
	})

	t.Run("nil error leaves the span alone", func(t *testing.T) {
		exporter := withRecordingTracer(t)

		_, span := StartSpan(context.Background(), "product.purge")
		RecordError(span, nil)
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Unset, spans[0].Status.Code)
	})
}

func TestSetAttributes(t *testing.T) {
	exporter := withRecordingTracer(t)

	_, span := StartSpan(context.Background(), "search.record")
	SetAttributes(span,
		SpanAttrProductID, uuid.New().String(),
		"search_count", int64(7),
	)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Len(t, spans[0].Attributes, 2)
}

func TestGetTraceID(t *testing.T) {
	t.Run("empty without a span", func(t *testing.T) {
		assert.Empty(t, GetTraceID(context.Background()))
		assert.Empty(t, GetSpanID(context.Background()))
	})

	t.Run("returns the active trace", func(t *testing.T) {
		withRecordingTracer(t)

		ctx, span := StartSpan(context.Background(), "test")
		defer span.End()

		assert.NotEmpty(t, GetTraceID(ctx))
		assert.NotEmpty(t, GetSpanID(ctx))
	})
}

func TestToAttribute(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, attribute.String("k", "v"), toAttribute("k", "v"))
	assert.Equal(t, attribute.Int("k", 3), toAttribute("k", 3))
	assert.Equal(t, attribute.Bool("k", true), toAttribute("k", true))
	assert.Equal(t, attribute.String("k", id.String()), toAttribute("k", id))
}
