package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"minchess/engine"
)

// export_eval writes the evaluator's material values and piece-square tables
// as JSON. Edit the file and pass it to the UCI engine with -tables.
// With -in the file is validated and re-written in canonical form.
func main() {
	inPath := flag.String("in", "", "optional tables JSON to read instead of the built-in defaults")
	outPath := flag.String("out", "", "output path (default stdout)")
	flag.Parse()

	tables := engine.DefaultTables
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open %s: %v\n", *inPath, err)
			os.Exit(2)
		}
		tables, err = engine.ReadTables(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *inPath, err)
			os.Exit(2)
		}
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", *outPath, err)
			os.Exit(2)
		}
		defer f.Close()
		w = f
	}
	if err := tables.WriteJSON(w); err != nil {
		fmt.Fprintf(os.Stderr, "write tables: %v\n", err)
		os.Exit(1)
	}
}
