package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorizedSession(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(g.ws.MaxMessageSize)

	log := g.logger.WithField("session", s.ID)
	log.Debug("established WS connection")

	if err := g.wsRunGameLoop(conn, s); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			log.Debug("ws closed")
			return
		}
		log.WithError(err).Warn("error in ws loop")
	}
}

/*
Every text message holds one command per line:

	g      no-op, replies with the current game
	o i    reveal tile i
	f i    toggle the flag on tile i
	c i    chord on tile i
	r      forfeit

Commands after the one that ends the game are dropped. Each message is
answered with the game as JSON. A message that does not parse is answered
with {"error": ...} and changes nothing; a command that fails stops the
message and its error is set on the game reply.
*/
func (g GameHandler) wsRunGameLoop(conn *websocket.Conn, s *session.Session) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			continue
		}

		cmds, err := parseCommands(strings.TrimSpace(string(buf)))
		if err != nil {
			if err := conn.WriteJSON(wrapError(err)); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
			continue
		}

		var applied []command
		snap, ended, err := s.Do(func(b *mines.Board) error {
			for _, c := range cmds {
				if err := c.apply(b); err != nil {
					return err
				}
				applied = append(applied, c)
				if b.State().Over() {
					break
				}
			}
			return nil
		})
		for i, c := range applied {
			if kind := c.kind(); kind != "" {
				g.recordMove(s.ID, kind, snap, ended && i == len(applied)-1)
			}
		}

		// commands before a failing one stay applied, so the reply always
		// carries the resulting game
		reply := NewGameSessionDTO(snap)
		if err != nil {
			reply.Error = err.Error()
		}
		if err := conn.WriteJSON(reply); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}
