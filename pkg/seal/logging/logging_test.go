package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/s0l0ist/sealgo/pkg/seal/logging"
)

func TestRedactedAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.New(slog.NewTextHandler(&buf, nil)))

	logger.Info(context.Background(), "key loaded", logging.Redacted("secret_key"))

	got := buf.String()
	if !strings.Contains(got, "secret_key="+logging.Placeholder()) {
		t.Fatalf("expected redacted attribute, got %q", got)
	}
}

func TestWithCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.With("scheme", "bfv").Debug(context.Background(), "context created")

	if got := buf.String(); !strings.Contains(got, "scheme=bfv") {
		t.Fatalf("expected scheme attribute, got %q", got)
	}
}

func TestDiscard(t *testing.T) {
	logger := logging.Discard()
	logger.Error(context.Background(), "dropped")
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx := context.Background()
	logger.Debug(ctx, "chain built")
	logger.Info(ctx, "context created")
	logger.Warn(ctx, "handle leaked")
	logger.Error(ctx, "load failed")

	got := buf.String()
	if strings.Contains(got, "chain built") || strings.Contains(got, "context created") {
		t.Fatalf("records below warn leaked: %q", got)
	}
	if !strings.Contains(got, "level=WARN msg=\"handle leaked\"") || !strings.Contains(got, "level=ERROR msg=\"load failed\"") {
		t.Fatalf("missing warn or error record: %q", got)
	}
}
