package api

import "encoding/json"

// MessageType tags a WebSocket message.
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is the WebSocket envelope in both directions.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is the payload of an incoming "move" message and the body of
// POST /api/games/:id/moves.
type MovePayload struct {
	Move string `json:"move"`
}

// GameState is what clients see of a game.
type GameState struct {
	ID      string   `json:"id"`
	FEN     string   `json:"fen"`
	Turn    string   `json:"turn"`
	Human   string   `json:"human"`
	Depth   int      `json:"depth"`
	Status  string   `json:"status"`
	Verdict string   `json:"verdict,omitempty"`
	History []string `json:"history"`
	// EngineMove is the reply played by the engine in the request that
	// produced this state, if any.
	EngineMove string `json:"engineMove,omitempty"`
}

type createGameRequest struct {
	FEN   string `json:"fen"`
	Human string `json:"human"`
	Depth int    `json:"depth"`
}

type analyzeRequest struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
}

type analyzeResponse struct {
	BestMove *string `json:"bestmove"`
	Score    int     `json:"score"`
	Depth    int     `json:"depth"`
	Nodes    uint64  `json:"nodes"`
}

type movesResponse struct {
	FEN   string   `json:"fen"`
	Moves []string `json:"moves"`
}

func newMessage(t MessageType, payload any) Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw, _ = json.Marshal(map[string]string{"error": err.Error()})
		t = MessageTypeError
	}
	return Message{Type: t, Payload: raw}
}

func stateMessage(st GameState) Message {
	return newMessage(MessageTypeGameState, st)
}

func errorMessage(err error) Message {
	return newMessage(MessageTypeError, map[string]string{"error": err.Error()})
}
