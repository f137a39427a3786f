package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"minchess/board"
	"minchess/engine"
	"minchess/game"
)

func (s *Server) analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	depth, err := s.depth(req.Depth)
	if err != nil {
		return err
	}
	pos, err := board.ParseFEN(req.FEN)
	if err != nil {
		return err
	}

	searcher := engine.NewSearcher(engine.WithLogger(s.log))
	res := searcher.Search(pos, depth)
	resp := analyzeResponse{Score: res.Score, Depth: depth, Nodes: searcher.Stats().Nodes}
	if res.HasMove {
		mv := res.Move.String()
		resp.BestMove = &mv
	}
	return c.JSON(resp)
}

func (s *Server) moves(c *fiber.Ctx) error {
	fen := c.Query("fen")
	if fen == "" {
		return fmt.Errorf("%w: missing fen parameter", errBadRequest)
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	resp := movesResponse{FEN: pos.FEN(), Moves: []string{}}
	for _, m := range board.GenerateMoves(&pos.Grid, pos.SideToMove) {
		resp.Moves = append(resp.Moves, m.String())
	}
	return c.JSON(resp)
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	human := board.White
	if req.Human != "" {
		var ok bool
		if human, ok = board.ParseColor(req.Human); !ok {
			return fmt.Errorf("%w: human must be \"w\" or \"b\"", errBadRequest)
		}
	}
	depth, err := s.depth(req.Depth)
	if err != nil {
		return err
	}

	st, err := s.games.Create(game.Config{
		FEN:    req.FEN,
		Human:  human,
		Depth:  depth,
		Strict: !s.cfg.Lenient,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(st)
}

func (s *Server) getGame(c *fiber.Ctx) error {
	st, err := s.games.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(st)
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.games.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) playMove(c *fiber.Ctx) error {
	var req MovePayload
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	st, err := s.games.Move(c.Params("id"), req.Move)
	if err != nil {
		return err
	}
	return c.JSON(st)
}
