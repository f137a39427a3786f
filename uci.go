package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"minchess/board"
	"minchess/crosscheck"
	"minchess/engine"
	"minchess/logging"
)

const (
	engineName   = "minchess 0.1"
	engineAuthor = "minchess authors"

	minDepth = 1
	maxDepth = 10
)

func main() {
	depth := flag.Int("depth", 4, "default search depth for go without limits")
	tablesPath := flag.String("tables", "", "evaluation tables JSON (see cmd/export_eval)")
	level := flag.String("log-level", "warn", "log level (logs go to stderr)")
	flag.Parse()

	log := logging.New(*level, false)
	tables := engine.DefaultTables
	if *tablesPath != "" {
		f, err := os.Open(*tablesPath)
		if err != nil {
			log.Fatal().Err(err).Msg("opening tables")
		}
		tables, err = engine.ReadTables(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("path", *tablesPath).Msg("reading tables")
		}
	}
	uciLoop(os.Stdin, os.Stdout, log, engine.Clamp(*depth, minDepth, maxDepth), tables)
}

// uciState is everything the protocol loop remembers between commands.
type uciState struct {
	pos      board.Position
	depth    int
	tables   *engine.Tables
	searcher *engine.Searcher
	out      io.Writer
	log      zerolog.Logger
}

func startPosition() board.Position {
	pos, _ := board.ParseFEN(board.StartFEN)
	return pos
}

func uciLoop(in io.Reader, out io.Writer, log zerolog.Logger, depth int, tables *engine.Tables) {
	st := &uciState{
		pos:      startPosition(),
		depth:    depth,
		tables:   tables,
		searcher: engine.NewSearcher(engine.WithLogger(log), engine.WithTables(tables)),
		out:      out,
		log:      log,
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		log.Debug().Str("cmd", line).Msg("uci input")

		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintln(out, "id name", engineName)
			fmt.Fprintln(out, "id author", engineAuthor)
			fmt.Fprintf(out, "option name Depth type spin default %d min %d max %d\n", st.depth, minDepth, maxDepth)
			fmt.Fprintln(out, "uciok")
		case "isready":
			fmt.Fprintln(out, "readyok")
		case "ucinewgame":
			st.pos = startPosition()
		case "quit":
			return
		case "stop":
			// Searches run to completion before the next command is read.
		case "go":
			st.goCommand(tokens[1:])
		case "position":
			st.positionCommand(tokens[1:])
		case "setoption":
			st.setOption(tokens[1:])
		case "eval":
			st.evalCommand()
		case "moves":
			var sb strings.Builder
			for _, m := range board.GenerateMoves(&st.pos.Grid, st.pos.SideToMove) {
				sb.WriteByte(' ')
				sb.WriteString(m.String())
			}
			fmt.Fprintf(out, "info string moves%s\n", sb.String())
		case "d":
			st.display()
		default:
			fmt.Fprintln(out, "info string Unknown command:", line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("reading input")
	}
}

// goCommand handles "go [depth N] [movetime MS] [wtime MS btime MS winc MS binc MS] [infinite]".
func (st *uciState) goCommand(args []string) {
	var depthToUse int
	var wTime, bTime, wInc, bInc, moveTime int

	for i := 0; i < len(args); i++ {
		nextToken := strings.ToLower(args[i])
		var target *int
		switch nextToken {
		case "infinite":
			continue
		case "depth":
			target = &depthToUse
		case "movetime":
			target = &moveTime
		case "wtime":
			target = &wTime
		case "btime":
			target = &bTime
		case "winc":
			target = &wInc
		case "binc":
			target = &bInc
		default:
			fmt.Fprintln(st.out, "info string Unknown go subcommand", nextToken)
			continue
		}
		if i+1 >= len(args) {
			fmt.Fprintln(st.out, "info string Malformed go command option", nextToken)
			continue
		}
		i++
		v, err := strconv.Atoi(args[i])
		if err != nil {
			fmt.Fprintln(st.out, "info string Malformed go command option; could not convert", nextToken)
			continue
		}
		*target = v
	}

	th := engine.TimeHandler{MoveTime: time.Duration(moveTime) * time.Millisecond}
	if st.pos.SideToMove == board.White {
		th.Remaining, th.Increment = time.Duration(wTime)*time.Millisecond, time.Duration(wInc)*time.Millisecond
	} else {
		th.Remaining, th.Increment = time.Duration(bTime)*time.Millisecond, time.Duration(bInc)*time.Millisecond
	}

	limit := st.depth
	switch {
	case depthToUse > 0:
		limit = engine.Min(depthToUse, maxDepth)
	case th.Budget() > 0:
		limit = maxDepth
	}

	ctx, cancel := th.Context(context.Background())
	defer cancel()

	res, reached := st.searcher.Think(ctx, st.pos, limit, func(info engine.Info) {
		fmt.Fprintf(st.out, "info depth %d score %s nodes %d time %d",
			info.Depth, st.uciScore(info.Score), info.Nodes, info.Elapsed.Milliseconds())
		if info.HasMove {
			fmt.Fprintf(st.out, " pv %s", info.Move)
		}
		fmt.Fprintln(st.out)
	})
	st.log.Info().Int("depth", reached).Int("score", res.Score).Str("move", res.MoveString()).Msg("go finished")

	if !res.HasMove {
		fmt.Fprintln(st.out, "bestmove (none)")
		return
	}
	fmt.Fprintln(st.out, "bestmove", res.Move)
}

// uciScore reports a White-positive score from the side to move's view.
// The no-moves score is shown as a mate-in-zero.
func (st *uciState) uciScore(score int) string {
	if st.pos.SideToMove == board.Black {
		score = -score
	}
	if engine.Abs(score) == engine.NoMovesScore {
		return "mate 0"
	}
	return "cp " + strconv.Itoa(score)
}

// positionCommand handles "position startpos|fen <fields...> [moves ...]".
func (st *uciState) positionCommand(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(st.out, "info string Malformed position command")
		return
	}

	var pos board.Position
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		pos = startPosition()
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		fenstr := strings.Join(rest[:end], " ")
		if fenstr == "" {
			fmt.Fprintln(st.out, "info string Invalid fen position")
			return
		}
		var err error
		pos, err = board.ParseFEN(fenstr)
		if err != nil {
			fmt.Fprintln(st.out, "info string", err)
			return
		}
		rest = rest[end:]
	default:
		fmt.Fprintln(st.out, "info string Invalid position subcommand")
		return
	}

	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, tok := range rest[1:] {
			m, err := board.ParseMove(strings.ToLower(tok))
			if err != nil {
				fmt.Fprintln(st.out, "info string Malformed move", tok)
				continue
			}
			pos = pos.Play(m)
		}
	}
	st.pos = pos
}

// setOption handles "setoption name Depth value N".
func (st *uciState) setOption(args []string) {
	var name, value string
	for i := 0; i+1 < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "name":
			name = args[i+1]
		case "value":
			value = args[i+1]
		}
	}
	if !strings.EqualFold(name, "depth") {
		fmt.Fprintln(st.out, "info string Unknown option", name)
		return
	}
	d, err := strconv.Atoi(value)
	if err != nil {
		fmt.Fprintln(st.out, "info string Malformed option value", value)
		return
	}
	st.depth = engine.Clamp(d, minDepth, maxDepth)
}

func (st *uciState) evalCommand() {
	terms := st.tables.Breakdown(&st.pos.Grid)
	for _, kind := range board.Kinds {
		if terms.Material[kind] == 0 && terms.Positional[kind] == 0 {
			continue
		}
		fmt.Fprintf(st.out, "info string %-6s material %6d positional %5d\n",
			kind, terms.Material[kind], terms.Positional[kind])
	}
	fmt.Fprintf(st.out, "info string eval %d\n", terms.Total())
}

func (st *uciState) display() {
	fen := st.pos.FEN()
	fmt.Fprint(st.out, st.pos.Grid.String())
	fmt.Fprintln(st.out, "Fen:", fen)

	status, err := crosscheck.Status(fen)
	if err != nil {
		fmt.Fprintln(st.out, "info string", err)
		return
	}
	diagram, err := crosscheck.Diagram(fen)
	if err != nil {
		fmt.Fprintln(st.out, "info string", err)
		return
	}
	fmt.Fprint(st.out, diagram)
	fmt.Fprintln(st.out, "Status:", status)
	if rep, err := crosscheck.Compare(fen); err == nil && len(rep.PseudoOnly) > 0 {
		fmt.Fprintln(st.out, "Leaves king attacked:", strings.Join(rep.PseudoOnly, " "))
	}
}
