package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/metrics"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

var ErrForbidden = errors.New("session token does not grant access to this game")

type GameHandler struct {
	logger    *logrus.Logger
	store     *session.Store
	jwt       *config.JWT
	ws        *config.WebSocket
	metrics   *metrics.Metrics
	newRandom func() mines.Random
}

// NewGameHandler uses newRandom to seed every new board; *rand.Rand is not
// safe to share between boards.
func NewGameHandler(
	logger *logrus.Logger,
	store *session.Store,
	jwt *config.JWT,
	ws *config.WebSocket,
	metrics *metrics.Metrics,
	newRandom func() mines.Random,
) *GameHandler {
	if newRandom == nil {
		newRandom = func() mines.Random { return mines.NewRand() }
	}
	return &GameHandler{
		logger:    logger,
		store:     store,
		jwt:       jwt,
		ws:        ws,
		metrics:   metrics,
		newRandom: newRandom,
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	params, label, err := dto.Params()
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	board, err := mines.NewCustom(params, mines.WithRandom(g.newRandom()))
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s := g.store.Create(board, label)
	token, err := g.jwt.IssueSessionToken(s.ID)
	if err != nil {
		g.store.Delete(s.ID)
		internalError(w, g.logger, "unable to issue session token", err)
		return
	}

	g.metrics.GamesStarted.WithLabelValues(label).Inc()
	g.logger.WithFields(logrus.Fields{
		"session": s.ID,
		"params":  params.String(),
	}).Debug("new game")

	resp := NewGameSessionDTO(s.Snapshot())
	resp.Token = token
	SendJSONOrLog(w, g.logger, resp)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	SendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseClickDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	left, err := dto.IsLeftClick()
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	kind := "reveal"
	if !left {
		kind = "flag"
	}
	g.move(w, r, kind, func(b *mines.Board) error {
		return b.OnClick(dto.Index, left)
	})
}

func (g GameHandler) Chord(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseClickDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	g.move(w, r, "chord", func(b *mines.Board) error {
		return b.Chord(dto.Index)
	})
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, "forfeit", func(b *mines.Board) error {
		b.Forfeit()
		return nil
	})
}

func (g GameHandler) move(
	w http.ResponseWriter, r *http.Request, kind string, fn func(*mines.Board) error,
) {
	s, ok := g.authorizedSession(w, r)
	if !ok {
		return
	}

	snap, ended, err := s.Do(fn)
	if errors.Is(err, mines.ErrOutOfBounds) {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		internalError(w, g.logger, "unable to apply move", err)
		return
	}

	g.recordMove(s.ID, kind, snap, ended)

	// the store evicts sessions idle for the token lifetime, so a refreshed
	// token stays valid for as long as the session can exist
	token, err := g.jwt.IssueSessionToken(s.ID)
	if err != nil {
		internalError(w, g.logger, "unable to refresh session token", err)
		return
	}
	resp := NewGameSessionDTO(snap)
	resp.Token = token
	SendJSONOrLog(w, g.logger, resp)
}

func (g GameHandler) recordMove(id, kind string, snap session.Snapshot, ended bool) {
	g.metrics.Moves.WithLabelValues(kind).Inc()
	if !ended {
		return
	}
	g.metrics.GamesFinished.WithLabelValues(snap.State.String()).Inc()
	g.logger.WithFields(logrus.Fields{
		"session": id,
		"state":   snap.State.String(),
	}).Info("game over")
}

func (g GameHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := g.store.Get(r.PathValue("id"))
	switch {
	case errors.Is(err, session.ErrInvalidID):
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return nil, false
	case errors.Is(err, session.ErrNotFound):
		SendErrorOrLog(w, g.logger, http.StatusNotFound, err)
		return nil, false
	case err != nil:
		internalError(w, g.logger, "unable to fetch session", err)
		return nil, false
	}
	return s, true
}

func (g GameHandler) authorizedSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := g.session(w, r)
	if !ok {
		return nil, false
	}
	claims, ok := middleware.SessionClaims(r)
	if !ok || claims.SessionID != s.ID {
		SendErrorOrLog(w, g.logger, http.StatusUnauthorized, ErrForbidden)
		return nil, false
	}
	return s, true
}
