package board

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFENStartPos(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.SideToMove != White {
		t.Fatalf("expected White to move, got %v", pos.SideToMove)
	}
	for col := 0; col < 8; col++ {
		if got := pos.Grid[6][col]; got != WhitePawn {
			t.Errorf("row 6 col %d: expected WhitePawn, got %v", col, got)
		}
		if got := pos.Grid[1][col]; got != BlackPawn {
			t.Errorf("row 1 col %d: expected BlackPawn, got %v", col, got)
		}
	}
	// Spot checks on the back ranks: a8 black rook, e8 black king, e1 white king.
	if pos.Grid[0][0] != BlackRook {
		t.Errorf("expected a8 BlackRook, got %v", pos.Grid[0][0])
	}
	if pos.Grid[0][4] != BlackKing {
		t.Errorf("expected e8 BlackKing, got %v", pos.Grid[0][4])
	}
	if pos.Grid[7][4] != WhiteKing {
		t.Errorf("expected e1 WhiteKing, got %v", pos.Grid[7][4])
	}
	for row := 2; row < 6; row++ {
		for col := 0; col < 8; col++ {
			if pos.Grid[row][col] != NoPiece {
				t.Fatalf("expected empty middle board, found %v at %d,%d", pos.Grid[row][col], row, col)
			}
		}
	}
}

func TestEncodeFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"2b5/p2NBp1p/1bp1nPPr/3P4/2pRnr1P/1k1B1Ppp/1P1P1pQP/Rq1N3K b - - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"kkkkkkkk/8/8/8/8/8/8/KKKKKKKK b - - 12 40",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		got := pos.FEN()
		wantPrefix := strings.Join(strings.Fields(fen)[:2], " ")
		if got != wantPrefix+" - - 0 1" {
			t.Errorf("round trip of %q: got %q", fen, got)
		}
		again, err := ParseFEN(got)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", got, err)
		}
		if again != pos {
			t.Errorf("re-decoding %q changed the position", got)
		}
	}
}

func TestParseFENIgnoresTrailingFields(t *testing.T) {
	a, err := ParseFEN("8/8/8/8/8/8/8/4K3 b")
	if err != nil {
		t.Fatalf("ParseFEN without placeholders: %v", err)
	}
	b, err := ParseFEN("8/8/8/8/8/8/8/4K3 b KQkq e3 7 33")
	if err != nil {
		t.Fatalf("ParseFEN with placeholders: %v", err)
	}
	if a != b {
		t.Fatalf("trailing fields changed the decoded position")
	}
}

func TestParseFENErrors(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		rank int
	}{
		{"empty", "", -1},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1", -1},
		{"nine ranks", "8/8/8/8/8/8/8/8/8 w - - 0 1", -1},
		{"bad letter", "8/8/8/8/8/8/8/4X3 w - - 0 1", 7},
		{"digit nine", "9/8/8/8/8/8/8/8 w - - 0 1", 0},
		{"digit zero", "08/8/8/8/8/8/8/8 w - - 0 1", 0},
		{"short rank", "8/8/7/8/8/8/8/8 w - - 0 1", 2},
		{"long rank", "8/8/8/8/4PPPPP/8/8/8 w - - 0 1", 4},
		{"digit overflow", "8/8/8/8/8/8/8/K8 w - - 0 1", 7},
		{"empty rank", "8/8//8/8/8/8/8 w - - 0 1", 2},
		{"missing side", "8/8/8/8/8/8/8/8", -1},
		{"bad side", "8/8/8/8/8/8/8/8 x - - 0 1", -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			if err == nil {
				t.Fatalf("expected error for %q", tc.fen)
			}
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T", err)
			}
			if fe.Rank != tc.rank {
				t.Errorf("expected rank %d, got %d (%v)", tc.rank, fe.Rank, err)
			}
		})
	}
}

func TestPlacementAfterE2E4(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove("e2e4")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	next := pos.Play(m)
	if next.Grid[6][4] != NoPiece {
		t.Fatalf("e2 not cleared: %v", next.Grid[6][4])
	}
	if next.Grid[4][4] != WhitePawn {
		t.Fatalf("e4 should hold a white pawn, got %v", next.Grid[4][4])
	}
	ranks := strings.Split(Placement(&next.Grid), "/")
	if ranks[4] != "4P3" {
		t.Fatalf("rank index 4: got %q want %q", ranks[4], "4P3")
	}
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1"
	if got := next.FEN(); got != want {
		t.Fatalf("FEN after e2e4: got %q want %q", got, want)
	}
}
