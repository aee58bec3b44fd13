package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestClient_Unconfigured(t *testing.T) {
	c := NewClient("", nil, zerolog.Nop())

	if c.Configured() {
		t.Fatalf("empty endpoint reported as configured")
	}

	if _, err := c.Call(context.Background(), ActionCreateExpense, nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Call: expected ErrNotConfigured, got %v", err)
	}
	if _, err := c.Query(context.Background(), ActionGetExpenses, nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Query: expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_Call_Success(t *testing.T) {
	var got callRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "text/plain" {
			t.Fatalf("expected text/plain content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Result{
			Success: true,
			Data:    map[string]any{"id": "exp_1"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())
	ctx := WithToken(context.Background(), "tok_abc")

	res, err := c.Call(ctx, ActionCreateExpense, map[string]any{"amount": 5000})
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if res.Data["id"] != "exp_1" {
		t.Fatalf("unexpected data: %+v", res.Data)
	}

	if got.Action != ActionCreateExpense {
		t.Fatalf("expected action %q on the wire, got %q", ActionCreateExpense, got.Action)
	}
	if got.Token != "tok_abc" {
		t.Fatalf("session token not attached, got %q", got.Token)
	}
	if got.Data["amount"] != float64(5000) {
		t.Fatalf("payload not forwarded: %+v", got.Data)
	}
}

func TestClient_Call_AppError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(Result{
			Success: false,
			Error:   &ErrorBody{Message: "金額が不正です"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())

	_, err := c.Call(context.Background(), ActionCreateExpense, nil)
	msg, ok := IsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if msg != "金額が不正です" {
		t.Fatalf("expected server message, got %q", msg)
	}
}

func TestClient_Call_AppErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(Result{Success: false})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())

	_, err := c.Call(context.Background(), ActionCreateExpense, nil)
	msg, ok := IsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if msg != genericErrMsg {
		t.Fatalf("expected generic message, got %q", msg)
	}
}

func TestClient_Call_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())

	_, err := c.Call(context.Background(), ActionCreateExpense, nil)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Action != ActionCreateExpense {
		t.Fatalf("transport error lost the action name: %+v", te)
	}
}

func TestClient_Query_ParamsAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("action") != ActionGetExpenses {
			t.Fatalf("action missing from query: %v", q)
		}
		if q.Get("token") != "tok_q" {
			t.Fatalf("token missing from query: %v", q)
		}
		if q.Get("project_id") != "p1" {
			t.Fatalf("param missing from query: %v", q)
		}
		_ = json.NewEncoder(w).Encode(Result{
			Success: true,
			Data:    map[string]any{"expenses": []any{}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), zerolog.Nop())
	ctx := WithToken(context.Background(), "tok_q")

	if _, err := c.Query(ctx, ActionGetExpenses, map[string]string{"project_id": "p1"}); err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
}

func TestTokenFromContext_Default(t *testing.T) {
	if tok := TokenFromContext(context.Background()); tok != "" {
		t.Fatalf("expected empty token, got %q", tok)
	}
	ctx := WithToken(context.Background(), "abc")
	if tok := TokenFromContext(ctx); tok != "abc" {
		t.Fatalf("expected abc, got %q", tok)
	}
}
