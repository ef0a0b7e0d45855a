// Package console é a camada de apresentação em terminal: distribui uma rodada
// e revela um envelope por linha digitada.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/radieske/lucky-envelopes/internal/envelope-game/round"
	"github.com/radieske/lucky-envelopes/internal/shared/money"
	"github.com/radieske/lucky-envelopes/pkg/allocator"
)

const help = "commands: <id> open envelope | ls list | again new round | q quit"

type Console struct {
	In     io.Reader
	Out    io.Writer
	Log    *zap.Logger
	Dealer *round.Dealer
}

// Run joga rodadas com o mesmo pedido até "q", fim da entrada ou ctx cancelado.
// A leitura roda numa goroutine própria para que o cancelamento não espere
// pela próxima linha.
func (c *Console) Run(ctx context.Context, req allocator.Request) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r, err := c.deal(req)
	if err != nil {
		return err
	}

	lines, readErr := c.readLines(ctx)
	c.prompt()
	for {
		if err := ctx.Err(); err != nil {
			return c.canceled(err)
		}

		var line string
		select {
		case <-ctx.Done():
			return c.canceled(ctx.Err())
		case l, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return c.canceled(err)
				}
				return <-readErr
			}
			line = l
		}

		cmd := strings.TrimSpace(line)
		switch cmd {
		case "":
		case "q", "quit", "exit":
			return nil
		case "ls":
			c.list(r)
		case "again":
			if r, err = c.deal(req); err != nil {
				return err
			}
		case "help", "?":
			fmt.Fprintln(c.Out, help)
		default:
			id, convErr := strconv.Atoi(cmd)
			if convErr != nil {
				fmt.Fprintf(c.Out, "unknown command %q\n%s\n", cmd, help)
				break
			}
			c.open(r, id)
		}
		c.prompt()
	}
}

// readLines entrega as linhas de In até EOF ou ctx.Done. O erro do scanner
// é publicado antes de fechar o canal.
func (c *Console) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(c.In)
		defer close(lines)
		defer func() { errc <- sc.Err() }()
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines, errc
}

func (c *Console) canceled(err error) error {
	c.logger().Debug("console stopped", zap.Error(err))
	return err
}

func (c *Console) deal(req allocator.Request) (*round.Round, error) {
	r, err := c.Dealer.Deal(req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(c.Out, "shuffling %d envelopes (%s)...\n", len(r.Envelopes), r.Policy)
	fmt.Fprintln(c.Out, help)
	c.progress(r)
	return r, nil
}

func (c *Console) open(r *round.Round, id int) {
	env, err := r.Open(id)
	switch {
	case errors.Is(err, round.ErrUnknownEnvelope):
		fmt.Fprintf(c.Out, "no envelope #%d, pick 0..%d\n", id, len(r.Envelopes)-1)
		return
	case errors.Is(err, round.ErrAlreadyOpened):
		fmt.Fprintf(c.Out, "envelope #%d already opened: %s\n", id, money.Format(env.Amount))
		return
	case err != nil:
		c.logger().Warn("open envelope", zap.Int("envelope_id", id), zap.Error(err))
		return
	}

	fmt.Fprintf(c.Out, "envelope #%d: %s\n", id, money.Format(env.Amount))
	c.progress(r)
	if r.AllOpened() {
		fmt.Fprintf(c.Out, "all envelopes opened, total %s\n", money.Format(r.Total()))
		fmt.Fprintln(c.Out, "type 'again' to play again or 'q' to quit")
	}
}

func (c *Console) list(r *round.Round) {
	for _, e := range r.Envelopes {
		if e.Opened {
			fmt.Fprintf(c.Out, "  #%d  %s\n", e.ID, money.Format(e.Amount))
			continue
		}
		fmt.Fprintf(c.Out, "  #%d  ?\n", e.ID)
	}
	c.progress(r)
}

func (c *Console) progress(r *round.Round) {
	fmt.Fprintf(c.Out, "opened: %d / %d\n", r.OpenedCount(), len(r.Envelopes))
}

func (c *Console) prompt() { fmt.Fprint(c.Out, "> ") }

func (c *Console) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}
