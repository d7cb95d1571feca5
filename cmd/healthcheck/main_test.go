package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddr(t *testing.T) {
	tests := map[string]string{
		"":                "127.0.0.1:8080",
		"garbage":         "127.0.0.1:8080",
		":9090":           "127.0.0.1:9090",
		"0.0.0.0:8080":    "127.0.0.1:8080",
		"[::]:8080":       "127.0.0.1:8080",
		"192.168.1.5:80":  "192.168.1.5:80",
		"127.0.0.1:18080": "127.0.0.1:18080",
	}

	for in, want := range tests {
		assert.Equal(t, want, normalizeAddr(in), "input %q", in)
	}
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "healthy", status: http.StatusOK, body: `{"status":"ok","has_token":false}`},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, wantErr: true},
		{name: "not ok", status: http.StatusOK, body: `{"status":"degraded"}`, wantErr: true},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/health", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := probe(context.Background(), srv.Client(), srv.URL)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
