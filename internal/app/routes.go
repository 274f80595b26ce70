package app

import (
	"net/http"

	"github.com/vancomm/minesweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.store, a.opts.JWT, a.ws, a.metrics, a.opts.NewRandom,
	)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/click", game.Click)
	a.router.HandleFunc("POST /game/{id}/chord", game.Chord)
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)

	a.router.Handle("GET /metrics", a.metrics.Handler())
	a.router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.SendJSONOrLog(w, a.logger, map[string]int{"sessions": a.store.Len()})
	})
}
