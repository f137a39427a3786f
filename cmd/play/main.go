package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"minchess/board"
	"minchess/logging"
	"minchess/tui"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "starting position")
	depth := flag.Int("depth", 3, "engine search depth in plies")
	strict := flag.Bool("strict", false, "only accept moves the generator produces")
	logFile := flag.String("log", "", "write debug log to this file (the terminal is taken by the UI)")
	flag.Parse()

	log := zerolog.Nop()
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating log file: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()
		log = logging.NewWriter(io.Writer(f), "debug", false)
	}

	if err := tui.Run(tui.Config{FEN: *fen, Depth: *depth, Strict: *strict, Log: log}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
