package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
)

type playoutArgs struct {
	games    int
	seed     int64
	maxPlies int
	verbose  bool
}

func parseArgs(args []string) (playoutArgs, Error) {
	result := playoutArgs{seed: 1, maxPlies: 400}
	if len(args) == 0 {
		return result, Errorf("usage: playout <games> [seed <n>] [maxplies <n>] [verbose]")
	}

	games, err := strconv.Atoi(args[0])
	if err != nil || games < 1 {
		return result, Errorf("invalid number of games '%v'", args[0])
	}
	result.games = games

	for i := 1; i < len(args); i++ {
		key := args[i]
		switch key {
		case "verbose":
			result.verbose = true
			continue
		case "seed", "maxplies":
		default:
			return result, Errorf("unknown argument '%v'", key)
		}

		if i+1 >= len(args) {
			return result, Errorf("missing value for '%v'", key)
		}
		i++
		value, err := strconv.Atoi(args[i])
		if err != nil {
			return result, Errorf("invalid value '%v' for '%v'", args[i], key)
		}
		if key == "seed" {
			result.seed = int64(value)
		} else if value < 1 {
			return result, Errorf("maxplies must be positive")
		} else {
			result.maxPlies = value
		}
	}
	return result, NilError
}

type tally struct {
	outcomes map[game.Status]int
	capped   int
	plies    int
}

// playGame plays uniformly random legal moves until a terminal status or
// the ply cap, then unwinds every move and checks the start is restored.
func playGame(r *rand.Rand, maxPlies int, logger Logger) (game.Status, int, Error) {
	g := game.NewGameState(game.WithDebugChecks(true), game.WithLogger(logger))
	startFen := g.FenString()
	startSignature := g.Signature()

	status := game.Ongoing
	plies := 0
	for ; plies < maxPlies; plies++ {
		status = g.Status()
		if status != game.Ongoing {
			break
		}
		moves := g.ValidMoves()
		g.MakeMove(moves[r.Intn(len(moves))])
	}
	if plies == maxPlies {
		status = g.Status()
	}

	for len(g.MoveHistory()) > 0 {
		g.UndoMove()
	}
	if g.FenString() != startFen || g.Signature() != startSignature || g.PositionCount(startSignature) != 1 {
		return status, plies, Errorf("unwinding %v plies did not restore the start: %v", plies, g.FenString())
	}
	return status, plies, NilError
}

func run(args []string, out io.Writer, progressOut io.Writer) Error {
	parsed, err := parseArgs(args)
	if !IsNil(err) {
		return err
	}

	logger := SilentLogger
	if parsed.verbose {
		logger = DefaultLogger
	}

	r := rand.New(rand.NewSource(parsed.seed))
	result := tally{outcomes: map[game.Status]int{}}

	progress := NoProgress
	if progressOut != nil {
		progress = CreateProgressBar(parsed.games, "playouts", progressOut)
	}

	start := time.Now()
	for i := 0; i < parsed.games; i++ {
		status, plies, err := playGame(r, parsed.maxPlies, logger)
		if !IsNil(err) {
			progress.Close()
			return err
		}
		if status == game.Ongoing {
			result.capped++
		} else {
			result.outcomes[status]++
		}
		result.plies += plies
		progress.Add(1)
	}
	progress.Close()
	elapsed := time.Since(start)

	for _, status := range []game.Status{
		game.Checkmate, game.Stalemate, game.FiftyMoveRule, game.ThreefoldRepetition, game.InsufficientMaterial,
	} {
		fmt.Fprintf(out, "%v: %v\n", status, FormatCount(result.outcomes[status]))
	}
	fmt.Fprintf(out, "capped at %v plies: %v\n", parsed.maxPlies, FormatCount(result.capped))
	fmt.Fprintf(out, "%v plies in %v (%v)\n", FormatCount(result.plies), elapsed.Round(time.Millisecond), FormatRate(result.plies, elapsed))
	return NilError
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
