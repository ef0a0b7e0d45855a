package events

import "time"

// Nomes dos eventos, usados no campo "type" e nos logs
const (
	TypeRoundDealt     = "round_dealt"
	TypeEnvelopeOpened = "envelope_opened"
)

// Evento emitido quando uma rodada é distribuída.
// Amounts segue a ordem dos IDs dos envelopes (já embaralhada).
type RoundDealt struct {
	Type          string    `json:"type"`
	RoundID       string    `json:"round_id"`
	Policy        string    `json:"policy"`
	EnvelopeCount int       `json:"envelope_count"`
	TotalAmount   int64     `json:"total_amount"` // em DENOMINATION_RANDOM, soma das cédulas sorteadas
	Amounts       []int64   `json:"amounts"`
	Seed          int64     `json:"seed"`
	Ts            time.Time `json:"ts"`
}

// Evento emitido a cada envelope aberto
type EnvelopeOpened struct {
	Type          string    `json:"type"`
	RoundID       string    `json:"round_id"`
	Policy        string    `json:"policy"`
	EnvelopeID    int       `json:"envelope_id"`
	Amount        int64     `json:"amount"`
	OpenedCount   int       `json:"opened_count"`
	EnvelopeCount int       `json:"envelope_count"`
	Ts            time.Time `json:"ts"`
}
