package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"minchess/board"
	"minchess/crosscheck"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	compare := flag.Bool("compare", false, "Compare root moves with a full-rules generator")
	reference := flag.Bool("reference", false, "Also count full-rules legal nodes for the same depth")
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *compare {
		if err := printComparison(*fen); err != nil {
			fmt.Fprintf(os.Stderr, "compare: %v\n", err)
			os.Exit(2)
		}
		if *depth <= 0 {
			return
		}
	}

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	if *divide {
		div := board.PerftDivide(pos, *depth)
		type kv struct {
			m board.Move
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].m.String() < arr[j].m.String() })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.m, x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	start := time.Now()
	nodes := board.Perft(pos, *depth)
	elapsed := time.Since(start)
	fmt.Printf("pseudo-legal\tdepth %d\tnodes %d\ttime %s\tnps %.0f\n", *depth, nodes, elapsed, nps(nodes, elapsed))

	if *reference {
		start = time.Now()
		ref, err := crosscheck.Perft(*fen, *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reference perft: %v\n", err)
			os.Exit(2)
		}
		elapsed = time.Since(start)
		fmt.Printf("full-rules\tdepth %d\tnodes %d\ttime %s\tnps %.0f\n", *depth, ref, elapsed, nps(ref, elapsed))
		if ref != nodes {
			fmt.Printf("difference\t%+d\n", int64(nodes)-int64(ref))
		}
	}
}

func nps(nodes uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(nodes) / elapsed.Seconds()
}

func printComparison(fen string) error {
	rep, err := crosscheck.Compare(fen)
	if errors.Is(err, crosscheck.ErrUnsupported) {
		return fmt.Errorf("%w (the reference generator needs one king per side)", err)
	}
	if err != nil {
		return err
	}
	fmt.Printf("agreed      (%d): %s\n", len(rep.Agreed), strings.Join(rep.Agreed, " "))
	fmt.Printf("pseudo-only (%d): %s\n", len(rep.PseudoOnly), strings.Join(rep.PseudoOnly, " "))
	fmt.Printf("missing     (%d): %s\n", len(rep.Missing), strings.Join(rep.Missing, " "))
	return nil
}
