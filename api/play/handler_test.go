package play

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kilianp07/foundry/core/factory"
	"github.com/kilianp07/foundry/world"
)

type fakeGame struct {
	err error
}

func (f fakeGame) Play(name, player string) (world.Round, error) {
	if f.err != nil {
		return world.Round{}, f.err
	}
	return world.Round{World: name, Player: player, CompositionID: "id", Outcome: "done"}, nil
}

func TestPlayHandler(t *testing.T) {
	cat, err := world.NewCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	h := NewPlayHandler(gameFunc(func(name, player string) (world.Round, error) {
		return world.Play(cat, name, player)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/play?world=frog-world&player=Nick", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var round world.Round
	if err := json.NewDecoder(rr.Body).Decode(&round); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if round.Outcome != "Nick the Frog encounters a bug and eats it!" || round.CompositionID == "" {
		t.Fatalf("unexpected round %+v", round)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/play?world=space-world", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}

func TestPlayHandler_Errors(t *testing.T) {
	h := NewPlayHandler(fakeGame{err: &factory.CompositionError{Family: "frog-world", Role: "obstacle-entity", Err: errors.New("boom")}})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/play", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	NewPlayHandler(fakeGame{}).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/play", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}

type gameFunc func(name, player string) (world.Round, error)

func (f gameFunc) Play(name, player string) (world.Round, error) { return f(name, player) }
