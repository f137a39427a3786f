package api

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// upgrade only lets WebSocket handshakes through to /ws routes.
func (s *Server) upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// handleSocket streams a game's state to one client and accepts its moves.
// Every successful move is broadcast to all connections of the game.
func (s *Server) handleSocket(c *websocket.Conn) {
	id := c.Params("id")
	e, err := s.games.attach(id, c)
	if err != nil {
		_ = c.WriteJSON(errorMessage(err))
		_ = c.Close()
		return
	}
	defer e.detach(c)

	log := s.log.With().Str("game", id).Logger()
	log.Debug().Msg("socket connected")

	e.mu.Lock()
	st := e.state("")
	e.mu.Unlock()
	if err := e.send(c, stateMessage(st)); err != nil {
		return
	}

	for {
		mt, data, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("socket closed")
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		if err := s.handleMessage(id, data); err != nil {
			log.Debug().Err(err).Msg("message rejected")
			if werr := e.send(c, errorMessage(err)); werr != nil {
				return
			}
		}
	}
}

func (s *Server) handleMessage(id string, data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	switch msg.Type {
	case MessageTypeMove:
		var mv MovePayload
		if err := json.Unmarshal(msg.Payload, &mv); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		_, err := s.games.Move(id, mv.Move)
		return err
	default:
		return fmt.Errorf("%w: unknown message type %q", errBadRequest, msg.Type)
	}
}
