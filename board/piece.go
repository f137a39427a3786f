package board

// Kind is a colorless piece type used for table lookups and move dispatch.
type Kind uint8

const (
	NoKind Kind = 0
	Pawn   Kind = 1
	Knight Kind = 2
	Bishop Kind = 3
	Rook   Kind = 4
	Queen  Kind = 5
	King   Kind = 6
)

// Kinds lists every real piece kind in table order.
var Kinds = [6]Kind{Pawn, Knight, Bishop, Rook, Queen, King}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Color is the side a piece belongs to, and the side to move of a position.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

// String returns the notation token for the side ("w" or "b").
func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// ParseColor reads a side token.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w":
		return White, true
	case "b":
		return Black, true
	}
	return White, false
}

// Piece packs a Kind and a Color into one byte.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are (kind | 8):
	// - piece & 7 gives the kind in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// NewPiece combines a side and a kind. NoKind yields NoPiece.
func NewPiece(c Color, k Kind) Piece {
	if k == NoKind {
		return NoPiece
	}
	return Piece(k) | Piece(c)<<3
}

// Kind returns the colorless kind of the piece.
func (p Piece) Kind() Kind { return Kind(p & 7) }

// Color returns the owner of the piece. NoPiece reports White.
func (p Piece) Color() Color { return Color(p >> 3 & 1) }

// IsEmpty reports whether the cell holds no piece.
func (p Piece) IsEmpty() bool { return p == NoPiece }

// Belongs reports whether p is a piece of side c.
func (p Piece) Belongs(c Color) bool { return p != NoPiece && p.Color() == c }

// Mirror swaps the color of the piece.
func (p Piece) Mirror() Piece {
	if p == NoPiece {
		return NoPiece
	}
	return p ^ 8
}

const pieceLetters = " PNBRQK"

// Char returns the notation letter, uppercase for White. NoPiece gives '.'.
func (p Piece) Char() byte {
	if p == NoPiece {
		return '.'
	}
	ch := pieceLetters[p.Kind()]
	if p.Color() == Black {
		ch += 'a' - 'A'
	}
	return ch
}

func (p Piece) String() string { return string(p.Char()) }

// pieceFromChar converts a notation letter to a Piece.
func pieceFromChar(ch byte) (Piece, bool) {
	switch ch {
	case 'P':
		return WhitePawn, true
	case 'N':
		return WhiteKnight, true
	case 'B':
		return WhiteBishop, true
	case 'R':
		return WhiteRook, true
	case 'Q':
		return WhiteQueen, true
	case 'K':
		return WhiteKing, true
	case 'p':
		return BlackPawn, true
	case 'n':
		return BlackKnight, true
	case 'b':
		return BlackBishop, true
	case 'r':
		return BlackRook, true
	case 'q':
		return BlackQueen, true
	case 'k':
		return BlackKing, true
	default:
		return NoPiece, false
	}
}
