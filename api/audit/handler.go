package audit

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kilianp07/foundry/core/audit"
)

// NewAuditHandler returns an HTTP handler exposing creation records via GET /api/audit.
// Requests must include an Authorization header with "Bearer <token>" when token is non-empty.
func NewAuditHandler(store audit.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		params := r.URL.Query()
		q := audit.Query{
			Scope:   params.Get("scope"),
			Key:     params.Get("key"),
			Outcome: params.Get("outcome"),
		}
		for name, dst := range map[string]*time.Time{"start": &q.Start, "end": &q.End} {
			s := params.Get(name)
			if s == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				http.Error(w, "invalid "+name, http.StatusBadRequest)
				return
			}
			*dst = t
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []audit.Record{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
