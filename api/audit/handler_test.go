package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kilianp07/foundry/core/audit"
)

type memStore struct{ recs []audit.Record }

func (m *memStore) Append(_ context.Context, r audit.Record) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memStore) Query(_ context.Context, q audit.Query) ([]audit.Record, error) {
	var res []audit.Record
	for _, r := range m.recs {
		if q.Match(r) {
			res = append(res, r)
		}
	}
	return res, nil
}

func (m *memStore) Close() error { return nil }

func TestAuditHandler_AuthAndFilters(t *testing.T) {
	store := &memStore{}
	now := time.Now().UTC()
	for _, r := range []audit.Record{
		{ID: "1", Timestamp: now, Op: "create", Scope: "connectors", Key: ".json", Outcome: "ok"},
		{ID: "2", Timestamp: now, Op: "make", Scope: "frog-world", Key: "primary-entity", Outcome: "failed"},
	} {
		if err := store.Append(context.Background(), r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	h := NewAuditHandler(store, "tok")

	req := httptest.NewRequest("GET", "/api/audit?scope=frog-world&outcome=failed", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var out []audit.Record
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].ID != "2" {
		t.Fatalf("unexpected records %+v", out)
	}

	req = httptest.NewRequest("GET", "/api/audit", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestAuditHandler_TimeWindow(t *testing.T) {
	store := &memStore{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = store.Append(context.Background(), audit.Record{ID: "old", Timestamp: base})
	_ = store.Append(context.Background(), audit.Record{ID: "new", Timestamp: base.Add(time.Hour)})
	h := NewAuditHandler(store, "")

	req := httptest.NewRequest("GET", "/api/audit?start=2024-01-01T00:30:00Z", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var out []audit.Record
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].ID != "new" {
		t.Fatalf("unexpected records %+v", out)
	}

	req = httptest.NewRequest("GET", "/api/audit?scope=none", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if body := rr.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty list, got %q", body)
	}

	req = httptest.NewRequest("GET", "/api/audit?end=yesterday", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}
