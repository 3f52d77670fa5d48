package log

import (
	"context"
	"os"
	"testing"

	contextPkg "StyleAdvisor/pkg/context"

	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func TestErrorWithTraceIDUsesRequestID(t *testing.T) {
	got := ErrorWithTraceID(Fields{RequestIDKey: "01HZX"}, "boom")
	if got != "01HZX" {
		t.Errorf("Expected request id as trace id, got %q", got)
	}
}

func TestErrorWithTraceIDGeneratesUUID(t *testing.T) {
	got := ErrorWithTraceID(nil, "boom")
	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("Expected a uuid trace id, got %q", got)
	}

	got = ErrorWithTraceID(Fields{RequestIDKey: "unknown"}, "boom")
	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("Expected a uuid trace id for unknown request, got %q", got)
	}
}

func TestWithRequestIDReadsContext(t *testing.T) {
	ctx := contextPkg.WithRequestID(context.Background(), "01HZY")
	if got := WithRequestID(ctx).Data[RequestIDKey]; got != "01HZY" {
		t.Errorf("Expected request id from context, got %v", got)
	}

	if got := WithRequestID(context.Background()).Data[RequestIDKey]; got != "unknown" {
		t.Errorf("Expected unknown request id, got %v", got)
	}
}
