package play

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/foundry/core/factory"
	"github.com/kilianp07/foundry/world"
)

// Game plays one round of a world.
type Game interface {
	Play(world, player string) (world.Round, error)
}

// NewPlayHandler returns an HTTP handler playing a round via
// GET /api/play?world=&player=. Unknown worlds answer 404.
func NewPlayHandler(g Game) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		round, err := g.Play(r.URL.Query().Get("world"), r.URL.Query().Get("player"))
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, factory.ErrUnsupportedDiscriminator) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(round); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
