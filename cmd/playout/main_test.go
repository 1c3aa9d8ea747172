package main

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
)

func TestParseArgs(t *testing.T) {
	parsed, err := parseArgs([]string{"5", "seed", "9", "verbose", "maxplies", "30"})
	require.True(t, IsNil(err))
	assert.Equal(t, playoutArgs{games: 5, seed: 9, maxPlies: 30, verbose: true}, parsed)

	parsed, err = parseArgs([]string{"2"})
	require.True(t, IsNil(err))
	assert.Equal(t, playoutArgs{games: 2, seed: 1, maxPlies: 400}, parsed)

	for _, args := range [][]string{{}, {"x"}, {"1", "seed"}, {"1", "seed", "x"}, {"1", "maxplies", "0"}, {"1", "what", "2"}} {
		_, err := parseArgs(args)
		assert.False(t, IsNil(err), args)
	}
}

func TestPlayGameIsDeterministic(t *testing.T) {
	statusA, pliesA, err := playGame(rand.New(rand.NewSource(3)), 120, SilentLogger)
	require.True(t, IsNil(err))
	statusB, pliesB, err := playGame(rand.New(rand.NewSource(3)), 120, SilentLogger)
	require.True(t, IsNil(err))

	assert.Equal(t, statusA, statusB)
	assert.Equal(t, pliesA, pliesB)
	assert.LessOrEqual(t, pliesA, 120)
	if statusA == game.Ongoing {
		assert.Equal(t, 120, pliesA)
	}
}

func TestRun(t *testing.T) {
	out := bytes.Buffer{}
	err := run([]string{"3", "seed", "11", "maxplies", "60"}, &out, nil)
	require.True(t, IsNil(err))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, 7, len(lines), out.String())
	assert.True(t, strings.HasPrefix(lines[0], "checkmate: "))
	assert.True(t, strings.HasPrefix(lines[5], "capped at 60 plies: "))
}
