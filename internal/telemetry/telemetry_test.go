package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/samdwyer/questforge/internal/errors"
)

func TestTracerUsesGlobalProvider(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := Tracer("combat").Start(context.Background(), "combat.turn")
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "combat.turn" {
		t.Errorf("Expected span name combat.turn, got %q", spans[0].Name())
	}
	if got := spans[0].InstrumentationScope().Name; got != "questforge/combat" {
		t.Errorf("Expected scope questforge/combat, got %q", got)
	}
}


func TestBattleAttributes(t *testing.T) {
	attrs := BattleAttributes("b-1", "p-1", "btl_gate", 42)

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range attrs {
		got[kv.Key] = kv.Value
	}
	if got["battle.id"].AsString() != "b-1" || got["battle.player_id"].AsString() != "p-1" {
		t.Errorf("Expected battle and player ids, got %v", attrs)
	}
	if got["battle.node_id"].AsString() != "btl_gate" || got["battle.seed"].AsInt64() != 42 {
		t.Errorf("Expected node btl_gate and seed 42, got %v", attrs)
	}
}

func TestFail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantKind string
	}{
		{
			name:     "domain error",
			err:      apperrors.New(apperrors.CodeEncounterNotFound, "encounter not found"),
			wantCode: string(apperrors.CodeEncounterNotFound),
			wantKind: apperrors.CodeEncounterNotFound.Kind().String(),
		},
		{
			name:     "foreign error",
			err:      errors.New("disk full"),
			wantCode: string(apperrors.CodeUnknown),
			wantKind: apperrors.CodeUnknown.Kind().String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

			_, span := tp.Tracer("test").Start(context.Background(), "battle.simulate")
			Fail(span, tt.err)
			span.End()

			spans := recorder.Ended()
			if len(spans) != 1 {
				t.Fatalf("Expected 1 span, got %d", len(spans))
			}
			if spans[0].Status().Code != codes.Error {
				t.Errorf("Expected error status, got %v", spans[0].Status().Code)
			}
			got := map[attribute.Key]string{}
			for _, kv := range spans[0].Attributes() {
				got[kv.Key] = kv.Value.AsString()
			}
			if got["error.code"] != tt.wantCode || got["error.kind"] != tt.wantKind {
				t.Errorf("Expected code %s kind %s, got %s %s", tt.wantCode, tt.wantKind, got["error.code"], got["error.kind"])
			}
			if len(spans[0].Events()) != 1 {
				t.Errorf("Expected 1 recorded error event, got %d", len(spans[0].Events()))
			}
		})
	}
}
