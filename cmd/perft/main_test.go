package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/cricklet/chessrules/internal/helpers"
)

func TestParseArgs(t *testing.T) {
	parsed, err := parseArgs([]string{"3", "fen", "8/8/8/8/8/8/8/K6k", "w", "-", "-", "0", "1", "divide"})
	require.True(t, IsNil(err))
	assert.Equal(t, perftArgs{
		depth:  3,
		fen:    "8/8/8/8/8/8/8/K6k w - - 0 1",
		divide: true,
	}, parsed)

	for _, args := range [][]string{{}, {"zero"}, {"0"}, {"2", "bogus"}} {
		_, err := parseArgs(args)
		assert.False(t, IsNil(err), args)
	}
}

func TestRun(t *testing.T) {
	out := bytes.Buffer{}
	err := run([]string{"2", "divide"}, &out, nil)
	require.True(t, IsNil(err))

	assert.Contains(t, out.String(), "e2e4: 20\n")
	assert.Contains(t, out.String(), "leaves: 400,")
	assert.Contains(t, out.String(), "400 nodes in")
}

func TestRunFromFen(t *testing.T) {
	out := bytes.Buffer{}
	err := run([]string{"3", "fen", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8", "w", "-", "-", "0", "1"}, &out, nil)
	require.True(t, IsNil(err))
	assert.Contains(t, out.String(), "2,812 nodes in")

	err = run([]string{"1", "fen", "garbage"}, &out, nil)
	assert.False(t, IsNil(err))
}
