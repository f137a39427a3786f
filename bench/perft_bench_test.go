package bench

import (
	"testing"

	"minchess/board"
	"minchess/crosscheck"
)

func benchPerft(b *testing.B, fen string, depth int) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.Perft(pos, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, board.StartFEN, 4)
}

func BenchmarkPerft_Midgame_D3(b *testing.B) {
	benchPerft(b, midgameFEN, 3)
}

// Full-rules perft from the reference generator, for comparing speed.
func BenchmarkReferencePerft_Initial_D3(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := crosscheck.Perft(board.StartFEN, 3); err != nil {
			b.Fatalf("reference perft: %v", err)
		}
	}
}
