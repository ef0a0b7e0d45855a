// Package round controla uma rodada do jogo: distribui os envelopes e
// revela um por vez.
package round

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/lucky-envelopes/internal/shared/random"
	"github.com/radieske/lucky-envelopes/pkg/allocator"
	"github.com/radieske/lucky-envelopes/pkg/contracts/events"
)

var (
	ErrUnknownEnvelope = errors.New("unknown envelope")
	ErrAlreadyOpened   = errors.New("envelope already opened")
)

// Dealer cria rodadas. Callbacks podem ser usados para métricas ou saída.
type Dealer struct {
	Log  *zap.Logger
	Seed int64 // 0 = semente nova (crypto/rand) a cada rodada

	OnDealt  func(events.RoundDealt)
	OnOpened func(events.EnvelopeOpened)

	now func() time.Time
}

// Round é dona dos envelopes até ser descartada (reset = nova rodada).
// Não é segura para uso concorrente; as aberturas são serializadas pelo chamador.
type Round struct {
	ID        string
	Policy    allocator.Policy
	Seed      int64
	Envelopes []allocator.Envelope

	dealer *Dealer
	opened int
}

// Deal distribui um pedido já validado (ver setup); o allocator não rejeita entradas
func (d *Dealer) Deal(req allocator.Request) (*Round, error) {
	seed := d.Seed
	if seed == 0 {
		var err error
		if seed, err = random.NewSeed(); err != nil {
			return nil, fmt.Errorf("deal round: %w", err)
		}
	}

	r := &Round{
		ID:        uuid.NewString(),
		Policy:    req.Policy,
		Seed:      seed,
		Envelopes: allocator.Allocate(req, random.NewSource(seed)),
		dealer:    d,
	}

	d.logger().Info("round dealt",
		zap.String("round_id", r.ID),
		zap.String("policy", string(r.Policy)),
		zap.Int("envelopes", len(r.Envelopes)),
		zap.Int64("total", r.Total()),
		zap.Int64("seed", seed),
	)

	if d.OnDealt != nil {
		amounts := make([]int64, len(r.Envelopes))
		for i, e := range r.Envelopes {
			amounts[i] = e.Amount
		}
		d.OnDealt(events.RoundDealt{
			Type:          events.TypeRoundDealt,
			RoundID:       r.ID,
			Policy:        string(r.Policy),
			EnvelopeCount: len(r.Envelopes),
			TotalAmount:   r.Total(),
			Amounts:       amounts,
			Seed:          seed,
			Ts:            d.clock(),
		})
	}
	return r, nil
}

// Open revela o envelope id e o marca como aberto
func (r *Round) Open(id int) (allocator.Envelope, error) {
	if id < 0 || id >= len(r.Envelopes) {
		return allocator.Envelope{}, fmt.Errorf("%w: %d", ErrUnknownEnvelope, id)
	}
	env := &r.Envelopes[id]
	if env.Opened {
		return *env, fmt.Errorf("%w: %d", ErrAlreadyOpened, id)
	}
	env.Opened = true
	r.opened++

	d := r.dealer
	d.logger().Debug("envelope opened",
		zap.String("round_id", r.ID),
		zap.Int("envelope_id", id),
		zap.Int64("amount", env.Amount),
		zap.Int("opened", r.opened),
	)
	if d.OnOpened != nil {
		d.OnOpened(events.EnvelopeOpened{
			Type:          events.TypeEnvelopeOpened,
			RoundID:       r.ID,
			Policy:        string(r.Policy),
			EnvelopeID:    id,
			Amount:        env.Amount,
			OpenedCount:   r.opened,
			EnvelopeCount: len(r.Envelopes),
			Ts:            d.clock(),
		})
	}
	return *env, nil
}

func (r *Round) OpenedCount() int { return r.opened }

// AllOpened é falso para uma rodada sem envelopes
func (r *Round) AllOpened() bool {
	return len(r.Envelopes) > 0 && r.opened == len(r.Envelopes)
}

// Total soma todos os envelopes da rodada
func (r *Round) Total() int64 { return allocator.Total(r.Envelopes) }

// RevealedTotal soma só os envelopes já abertos
func (r *Round) RevealedTotal() int64 {
	var sum int64
	for _, e := range r.Envelopes {
		if e.Opened {
			sum += e.Amount
		}
	}
	return sum
}

func (d *Dealer) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

func (d *Dealer) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now().UTC()
}
