package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestErrorCarriesContextFieldsAndStack(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "api", Level: zerolog.DebugLevel, Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-42")
	ctx = log.WithUserID(ctx, "user-7")
	log.Error(ctx, "order failed", errors.New("timeout"))

	line := buf.String()
	for _, want := range []string{`"request_id":"req-42"`, `"user_id":"user-7"`, `"stack"`, `"service":"api"`} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %s in log line: %s", want, line)
		}
	}
}

func TestWarnStackToggle(t *testing.T) {
	quiet := &bytes.Buffer{}
	New(Options{ServiceName: "api", Output: quiet}).Warn(context.Background(), "low stock")
	if strings.Contains(quiet.String(), `"stack"`) {
		t.Error("warn must omit stack by default")
	}

	noisy := &bytes.Buffer{}
	New(Options{ServiceName: "api", Output: noisy, WarnStack: true}).Warn(context.Background(), "low stock")
	if !strings.Contains(noisy.String(), `"stack"`) {
		t.Error("warn should include stack when enabled")
	}
}

func TestWithFieldsAccumulate(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "api", Output: buf})

	ctx := log.WithFields(context.Background(), map[string]any{"order_id": "o-1", "attempt": 2})
	log.Info(ctx, "retrying capture")

	line := buf.String()
	if !strings.Contains(line, `"order_id":"o-1"`) || !strings.Contains(line, `"attempt":2`) {
		t.Fatalf("expected fields in log line: %s", line)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("warn") != zerolog.WarnLevel {
		t.Error("expected warn level")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Error("empty level should default to info")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Error("unknown level should default to info")
	}
}
