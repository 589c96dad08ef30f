package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"device_inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func wsURL(srvURL, session, token string) string {
	u, _ := url.Parse(srvURL)
	u.Scheme = "ws"
	u.Path = "/ws"
	q := u.Query()
	q.Set("session", session)
	if token != "" {
		q.Set("token", token)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func TestWebSocket_SnapshotStream(t *testing.T) {
	updates := make(chan service.View, 2)
	updates <- service.View{SessionID: "s1", Total: 3}
	lists := &mockLists{updates: updates}
	auth := &mockAuth{parseID: 31}
	s := &service.Service{Authorization: auth, Lists: lists}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(srv.URL, "s1", "tok-31"), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "snapshot" {
		t.Fatalf("bad envelope: %+v", env)
	}
	var v service.View
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if v.SessionID != "s1" || v.Total != 3 {
		t.Fatalf("unexpected view: %+v", v)
	}
	if lists.lastID != "s1" || lists.lastOperator != 31 {
		t.Fatalf("subscribed to %q as operator %d", lists.lastID, lists.lastOperator)
	}
	if auth.lastParseToken != "tok-31" {
		t.Fatalf("token not read from query: %q", auth.lastParseToken)
	}

	updates <- service.View{SessionID: "s1", Query: "pc"}
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read update: %v", err)
	}
	_ = json.Unmarshal(env.Data, &v)
	if v.Query != "pc" {
		t.Fatalf("expected updated view, got %+v", v)
	}

	close(updates)
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read closed notice: %v", err)
	}
	if env.Type != "closed" {
		t.Fatalf("expected closed envelope, got %+v", env)
	}
}

func TestWebSocket_UnknownSession(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Lists: &mockLists{err: service.ErrSessionNotFound}}
	r := newTestRouter(s)
	srv := httptest.NewServer(r)
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	_, resp, err := dialer.Dial(wsURL(srv.URL, "nope", "tok"), nil)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 response, got %+v", resp)
	}
}

func TestWebSocket_RequiresToken(t *testing.T) {
	cases := []struct {
		name     string
		token    string
		header   http.Header
		parseErr error
	}{
		{name: "no token"},
		{name: "rejected query token", token: "bad", parseErr: service.ErrInvalidToken},
		{name: "rejected header token", header: authHeader("bad"), parseErr: service.ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lists := &mockLists{updates: make(chan service.View)}
			s := &service.Service{Authorization: &mockAuth{parseErr: tc.parseErr}, Lists: lists}
			srv := httptest.NewServer(newTestRouter(s))
			defer srv.Close()

			dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
			_, resp, err := dialer.Dial(wsURL(srv.URL, "s1", tc.token), tc.header)
			if err == nil {
				t.Fatalf("expected handshake failure")
			}
			if resp == nil || resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("expected 401 response, got %+v", resp)
			}
			if lists.lastID != "" {
				t.Fatalf("Subscribe called without a valid token: %q", lists.lastID)
			}
		})
	}
}

func TestWebSocket_HeaderToken(t *testing.T) {
	updates := make(chan service.View, 1)
	updates <- service.View{SessionID: "s2"}
	lists := &mockLists{updates: updates}
	s := &service.Service{Authorization: &mockAuth{parseID: 8}, Lists: lists}
	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(srv.URL, "s2", ""), authHeader("hdr"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "snapshot" || lists.lastOperator != 8 {
		t.Fatalf("envelope %+v, operator %d", env, lists.lastOperator)
	}
}
