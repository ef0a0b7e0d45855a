package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/lucky-envelopes/internal/envelope-game/round"
	"github.com/radieske/lucky-envelopes/pkg/allocator"
	"github.com/radieske/lucky-envelopes/pkg/contracts/events"
)

func newConsole(in string, d *round.Dealer) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Console{In: strings.NewReader(in), Out: out, Log: zap.NewNop(), Dealer: d}, out
}

func TestRunRevealsAllEnvelopes(t *testing.T) {
	c, out := newConsole("ls\n0\n0\n9\nfoo\n1\n\n2\nq\n1\n", &round.Dealer{Seed: 5})

	err := c.Run(context.Background(), allocator.Request{TotalAmount: 1000, EnvelopeCount: 3, Policy: allocator.PolicyEqual})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "shuffling 3 envelopes (EQUAL)")
	assert.Contains(t, s, "  #0  ?")
	assert.Contains(t, s, "envelope #0 already opened")
	assert.Contains(t, s, "no envelope #9, pick 0..2")
	assert.Contains(t, s, `unknown command "foo"`)
	assert.Contains(t, s, "opened: 3 / 3")
	assert.Contains(t, s, "all envelopes opened, total 1.000 ₫")
	assert.Contains(t, s, "334 ₫")
	assert.Contains(t, s, "333 ₫")
}

func TestRunAgainDealsNewRound(t *testing.T) {
	var rounds []string
	d := &round.Dealer{Seed: 1, OnDealt: func(e events.RoundDealt) { rounds = append(rounds, e.RoundID) }}
	c, out := newConsole("0\nagain\n", d)

	err := c.Run(context.Background(), allocator.Request{TotalAmount: 50, EnvelopeCount: 2, Policy: allocator.PolicyWeightedRandom})
	require.NoError(t, err)

	require.Len(t, rounds, 2)
	assert.NotEqual(t, rounds[0], rounds[1])
	assert.Equal(t, 2, strings.Count(out.String(), "opened: 0 / 2"))
}

func TestRunStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, _ := newConsole("0\n", &round.Dealer{Seed: 1})
	err := c.Run(ctx, allocator.Request{TotalAmount: 50, EnvelopeCount: 2, Policy: allocator.PolicyEqual})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunStopsWhenCanceledWhileReading(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sem Log: o console cai no logger nop
	c := &Console{In: pr, Out: &bytes.Buffer{}, Dealer: &round.Dealer{Seed: 1}}
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx, allocator.Request{TotalAmount: 50, EnvelopeCount: 2, Policy: allocator.PolicyEqual})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the context was canceled")
	}
}

func TestRunReturnsOnEndOfInput(t *testing.T) {
	c, out := newConsole("0\n", &round.Dealer{Seed: 2})
	c.Log = nil

	err := c.Run(context.Background(), allocator.Request{TotalAmount: 50, EnvelopeCount: 2, Policy: allocator.PolicyEqual})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "opened: 1 / 2")
}

func TestLoggerFallsBackToNop(t *testing.T) {
	c := &Console{}
	require.NotNil(t, c.logger())
	assert.NotPanics(t, func() { c.logger().Warn("open envelope") })
}
