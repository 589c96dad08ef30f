package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ":8080"},
		{"9090", ":9090"},
		{":7070", ":7070"},
		{"localhost:6060", "localhost:6060"},
	}
	for _, c := range cases {
		if got := normalizeAddr(c.in); got != c.want {
			t.Fatalf("normalizeAddr(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestServer_RunReturnsNilAfterShutdown(t *testing.T) {
	srv := New("127.0.0.1:0", http.NotFoundHandler())
	if srv.Addr() != "127.0.0.1:0" {
		t.Fatalf("addr = %q", srv.Addr())
	}

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v; want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Shutdown")
	}
}
