package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/jaminalder/time-travel-tic-tac-toe/internal/app"
	"github.com/jaminalder/time-travel-tic-tac-toe/internal/domain"
)

type handlers struct {
	svc *app.Service
	tpl *templates
	log zerolog.Logger
}

func (h *handlers) write(w http.ResponseWriter, t *template.Template, name string, data any) {
	b, err := render(t, name, data)
	if err != nil {
		h.log.Error().Err(err).Msg("render")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	h.write(w, h.tpl.index, "base", nil)
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "games": h.svc.Len()})
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.CreateGame()
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.write(w, h.tpl.page, "base", gameData{ID: gs.ID, View: gs.View})
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	cell, ok := formInt(w, r, "cell")
	if !ok {
		return
	}
	h.respond(w, r, func(id string) (*app.GameState, error) { return h.svc.Play(id, cell) })
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
	step, ok := formInt(w, r, "step")
	if !ok {
		return
	}
	h.respond(w, r, func(id string) (*app.GameState, error) { return h.svc.JumpTo(id, step) })
}

func (h *handlers) order(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.svc.ToggleOrder)
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.svc.Reset)
}

// respond runs op against the game in the URL and answers with the game
// fragment for htmx or a redirect back to the page for plain form posts.
func (h *handlers) respond(w http.ResponseWriter, r *http.Request, op func(id string) (*app.GameState, error)) {
	id := chi.URLParam(r, "id")
	gs, err := op(id)
	switch {
	case errors.Is(err, app.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, domain.ErrOutOfBounds):
		http.Error(w, "cell out of bounds", http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrStepOutOfRange):
		http.Error(w, "step out of range", http.StatusBadRequest)
		return
	case err != nil:
		h.log.Error().Err(err).Str("game", id).Msg("update failed")
		http.Error(w, "update failed", http.StatusInternalServerError)
		return
	}
	if r.Header.Get("HX-Request") == "" {
		http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
		return
	}
	h.write(w, h.tpl.game, "", gameData{ID: gs.ID, View: gs.View})
}

func formInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	_ = r.ParseForm()
	v, err := strconv.Atoi(r.Form.Get(key))
	if err != nil {
		http.Error(w, "invalid "+key, http.StatusBadRequest)
		return 0, false
	}
	return v, true
}
