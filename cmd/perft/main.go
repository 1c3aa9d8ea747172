package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/profile"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
)

type perftArgs struct {
	depth   int
	fen     string
	divide  bool
	profile bool
}

var keywords = []string{"fen", "divide", "profile"}

func parseArgs(args []string) (perftArgs, Error) {
	result := perftArgs{}
	if len(args) == 0 {
		return result, Errorf("usage: perft <depth> [fen <fen>] [divide] [profile]")
	}

	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		return result, Errorf("invalid depth '%v'", args[0])
	}
	result.depth = depth

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "divide":
			result.divide = true
		case "profile":
			result.profile = true
		case "fen":
			fields := []string{}
			for i+1 < len(args) && !Contains(keywords, args[i+1]) {
				i++
				fields = append(fields, args[i])
			}
			result.fen = strings.Join(fields, " ")
		default:
			return result, Errorf("unknown argument '%v'", args[i])
		}
	}
	return result, NilError
}

func run(args []string, out io.Writer, progressOut io.Writer) Error {
	parsed, err := parseArgs(args)
	if !IsNil(err) {
		return err
	}

	if parsed.profile {
		p := profile.Start(profile.ProfilePath("."), profile.NoShutdownHook)
		defer p.Stop()
	}

	g := game.NewGameState()
	if parsed.fen != "" {
		g, err = game.GameStateFromFen(parsed.fen)
		if !IsNil(err) {
			return err
		}
	}

	fmt.Fprintln(out, g.FenString())
	start := time.Now()

	progress := NoProgress
	if progressOut != nil {
		progress = CreateProgressBar(len(g.ValidMoves()), fmt.Sprint("depth ", parsed.depth), progressOut)
	}
	divide := game.PerftDivide(g, parsed.depth, progress.Set)
	progress.Close()

	elapsed := time.Since(start)

	total := game.PerftResult{}
	moves := make([]string, 0, len(divide))
	for move, result := range divide {
		total.Add(result)
		moves = append(moves, move)
	}

	if parsed.divide {
		sort.Strings(moves)
		for _, move := range moves {
			fmt.Fprintf(out, "%v: %v\n", move, divide[move].Leaves)
		}
	}

	fmt.Fprintln(out, total)
	fmt.Fprintf(out, "%v nodes in %v (%v)\n", FormatCount(total.Leaves), elapsed.Round(time.Millisecond), FormatRate(total.Leaves, elapsed))
	return NilError
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
