package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/pkg/profile"

	"minchess/board"
	"minchess/engine"
	"minchess/logging"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", 4, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", board.StartFEN, "FEN to search")
	profFlag := flag.String("profile", "", "profile to record: cpu or mem (empty = none)")
	profDir := flag.String("profile-dir", ".", "directory for profile output")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logging.New(*level, false)
	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}

	pos, err := board.ParseFEN(*fenFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing FEN")
	}

	switch *profFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profDir), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*profDir), profile.NoShutdownHook).Stop()
	default:
		log.Fatal().Str("profile", *profFlag).Msg("unknown profile kind")
	}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", pos.FEN(), *depthFlag, *repeatFlag)

	s := engine.NewSearcher(engine.WithLogger(log))
	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		res := s.Search(pos, *depthFlag)
		st := s.Stats()
		totalNodes += st.Nodes
		fmt.Printf("iteration %d: bestmove %s score %d %s\n", i+1, res.MoveString(), res.Score, st)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v nodes: %d\n", totalElapsed, totalNodes)
}
