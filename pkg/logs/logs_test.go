package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/polijecare/polijecare_web/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFanout(t *testing.T) {
	var info, errs bytes.Buffer
	h := Fanout(
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h).With("request_id", "r-1")

	log.Info("booking submitted")
	log.Error("booking failed")

	if !strings.Contains(info.String(), "booking submitted") || !strings.Contains(info.String(), "booking failed") {
		t.Errorf("info sink missing records: %s", info.String())
	}
	if strings.Contains(errs.String(), "booking submitted") {
		t.Error("error sink received an info record")
	}
	if !strings.Contains(errs.String(), "request_id=r-1") {
		t.Errorf("attrs not propagated: %s", errs.String())
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled on every sink")
	}
}

func TestLokiWriter(t *testing.T) {
	var got lokiPush
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/loki/api/v1/push" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if u, p, ok := r.BasicAuth(); !ok || u != "loki" || p != "secret" {
			t.Errorf("basic auth = %q %q %v", u, p, ok)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Server.Environment = "staging"
	cfg.Logging.Output.Loki = config.LokiConfig{Enabled: true, Endpoint: srv.URL + "/", Username: "loki", Password: "secret"}

	lw := newLokiWriter(cfg)
	line := []byte(`{"msg":"hello \"quoted\""}` + "\n")
	n, err := lw.Write(line)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(line) {
		t.Errorf("n = %d", n)
	}

	if len(got.Streams) != 1 {
		t.Fatalf("streams = %+v", got.Streams)
	}
	s := got.Streams[0]
	if s.Stream["service"] != defaultService || s.Stream["env"] != "staging" {
		t.Errorf("labels = %v", s.Stream)
	}
	if s.Values[0][1] != `{"msg":"hello \"quoted\""}` {
		t.Errorf("line = %q", s.Values[0][1])
	}
	if s.Values[0][0] == "" {
		t.Error("missing timestamp")
	}
}
