// Package api serves analysis and human-versus-engine games over HTTP and
// WebSocket.
package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"minchess/board"
	"minchess/engine"
	"minchess/game"
)

// errBadRequest marks malformed request bodies and parameters.
var errBadRequest = errors.New("bad request")

// Config configures the service. Zero fields take their defaults.
type Config struct {
	Depth        int    // default engine depth for games and analysis
	MaxDepth     int    // largest depth a client may ask for
	AllowOrigins string // CORS origins, "*" when empty
	// Lenient games apply any well-formed move instead of only generated ones.
	Lenient bool
	Log     zerolog.Logger
}

func (c *Config) setDefaults() {
	if c.Depth == 0 {
		c.Depth = game.DefaultDepth
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = 6
	}
	if c.AllowOrigins == "" {
		c.AllowOrigins = "*"
	}
}

func (c *Config) validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth %d", engine.ErrInvalidDepth, c.MaxDepth)
	}
	if c.Depth < 1 || c.Depth > c.MaxDepth {
		return fmt.Errorf("%w: default depth %d not in 1..%d", engine.ErrInvalidDepth, c.Depth, c.MaxDepth)
	}
	return nil
}

// Server is the fiber application with its game manager.
type Server struct {
	cfg   Config
	app   *fiber.App
	games *Manager
	log   zerolog.Logger
}

// New builds the service. It fails when the configured depths are out of range.
func New(cfg Config) (*Server, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, games: NewManager(cfg.Log), log: cfg.Log}

	s.app = fiber.New(fiber.Config{
		AppName:               "minchess",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	s.app.Use(requestLogger(s.log))

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api")
	api.Post("/analyze", s.analyze)
	api.Get("/moves", s.moves)

	games := api.Group("/games")
	games.Post("/", s.createGame)
	games.Get("/:id", s.getGame)
	games.Delete("/:id", s.deleteGame)
	games.Post("/:id/moves", s.playMove)

	s.app.Use("/ws", s.upgrade)
	s.app.Get("/ws/games/:id", websocket.New(s.handleSocket, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))
	return s, nil
}

// App exposes the fiber application, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Games returns the game manager.
func (s *Server) Games() *Manager { return s.games }

func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error { return s.app.Shutdown() }

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		ev := log.Debug()
		if err != nil {
			ev = log.Warn().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
		return err
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, board.ErrFormat),
		errors.Is(err, board.ErrInvalidMoveText),
		errors.Is(err, engine.ErrInvalidDepth):
		return fiber.StatusBadRequest
	case errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrIllegalMove):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// depth validates a client-supplied depth, zero meaning the default.
func (s *Server) depth(d int) (int, error) {
	switch {
	case d == 0:
		return s.cfg.Depth, nil
	case d < 0 || d > s.cfg.MaxDepth:
		return 0, fmt.Errorf("%w: %d not in 1..%d", engine.ErrInvalidDepth, d, s.cfg.MaxDepth)
	default:
		return d, nil
	}
}
