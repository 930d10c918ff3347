package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// memoryIdempotencyStore is an in-process stand-in for the redis store.
type memoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{entries: make(map[string][]byte)}
}

func (s *memoryIdempotencyStore) CheckAndSet(_ context.Context, key string, response []byte, _ time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[key]; ok {
		return true, existing, nil
	}
	s.entries[key] = response
	return false, nil, nil
}

func (s *memoryIdempotencyStore) Update(_ context.Context, key string, response []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = response
	return nil
}

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":42}`))
	})
	wrapped := NewIdempotencyMiddleware(newMemoryIdempotencyStore(), zerolog.Nop()).Wrap(next)

	first := httptest.NewRecorder()
	req1 := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req1.Header.Set(IdempotencyKeyHeader, "key-1")
	wrapped.ServeHTTP(first, req1)

	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req2.Header.Set(IdempotencyKeyHeader, "key-1")
	wrapped.ServeHTTP(second, req2)

	if calls != 1 {
		t.Errorf("expected handler to run once, ran %d times", calls)
	}
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Error("expected replay marker header")
	}
	if second.Body.String() != `{"id":42}` {
		t.Errorf("unexpected replayed body: %s", second.Body.String())
	}
}

func TestIdempotencyMiddleware_PassThrough(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})
	wrapped := NewIdempotencyMiddleware(newMemoryIdempotencyStore(), zerolog.Nop()).Wrap(next)

	// No key header: every request reaches the handler.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments", nil))
	}
	// Non-POST requests bypass the store even with a key.
	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	if calls != 3 {
		t.Errorf("expected 3 handler runs, got %d", calls)
	}
}

func TestIdempotencyMiddleware_FailuresNotCached(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":42}`))
	})
	store := newMemoryIdempotencyStore()
	wrapped := NewIdempotencyMiddleware(store, zerolog.Nop()).Wrap(next)

	req1 := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req1.Header.Set(IdempotencyKeyHeader, "key-1")
	rec1 := httptest.NewRecorder()
	wrapped.ServeHTTP(rec1, req1)

	if rec1.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec1.Code)
	}

	// The retry reaches the handler because the failure was not stored.
	req2 := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req2.Header.Set(IdempotencyKeyHeader, "key-1")
	rec2 := httptest.NewRecorder()
	wrapped.ServeHTTP(rec2, req2)

	if calls != 2 {
		t.Errorf("expected 2 handler runs, got %d", calls)
	}
	if rec2.Code != http.StatusCreated {
		t.Errorf("expected 201 on retry, got %d", rec2.Code)
	}
	if rec2.Header().Get("X-Idempotency-Replay") != "" {
		t.Error("retry must not be marked as a replay")
	}
}

// brokenUpdateStore fails every cache write after the initial claim.
type brokenUpdateStore struct {
	*memoryIdempotencyStore
}

func (s *brokenUpdateStore) Update(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection reset")
}

func TestIdempotencyMiddleware_CacheWriteFailureLogged(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":42}`))
	})

	var logs bytes.Buffer
	store := &brokenUpdateStore{newMemoryIdempotencyStore()}
	wrapped := NewIdempotencyMiddleware(store, zerolog.New(&logs)).Wrap(next)

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	// The client still gets its response; the lost cache write is logged.
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(logs.String(), "failed to cache idempotent response") {
		t.Errorf("expected a log entry for the failed cache write, got %q", logs.String())
	}
	if !strings.Contains(logs.String(), "connection reset") {
		t.Errorf("expected the store error in the log entry, got %q", logs.String())
	}
}
