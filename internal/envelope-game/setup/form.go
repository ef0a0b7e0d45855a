// Package setup valida a entrada do jogador antes de chamar o allocator.
// O allocator não rejeita nada; tudo que não faz sentido é barrado aqui.
package setup

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/radieske/lucky-envelopes/pkg/allocator"
)

var (
	ErrInvalidCount            = errors.New("invalid envelope count")
	ErrInvalidAmount           = errors.New("invalid total amount")
	ErrInvalidPolicy           = errors.New("invalid distribution policy")
	ErrInvalidDenominationSpec = errors.New("invalid denomination spec")
	ErrCountExceedsSupply      = errors.New("envelope count exceeds available bills")
)

// Form guarda a entrada crua do jogador
type Form struct {
	Amount string // total, aceita separadores de milhar ("500,000", "500.000")
	Count  string // número de envelopes
	Policy string // vazio = WEIGHTED_RANDOM
	Bills  string // atalho de cédulas, ex: "50x3, 20x2"
}

// Limits restringe a entrada. MaxEnvelopes 0 = sem limite.
type Limits struct {
	MaxEnvelopes int
}

// Request valida o formulário e monta o pedido para o allocator
func (f Form) Request(lim Limits) (allocator.Request, error) {
	count, err := strconv.Atoi(strings.TrimSpace(f.Count))
	if err != nil || count <= 0 {
		return allocator.Request{}, fmt.Errorf("%w: %q", ErrInvalidCount, f.Count)
	}
	if lim.MaxEnvelopes > 0 && count > lim.MaxEnvelopes {
		return allocator.Request{}, fmt.Errorf("%w: %d is above the limit of %d", ErrInvalidCount, count, lim.MaxEnvelopes)
	}

	policy := allocator.PolicyWeightedRandom
	if strings.TrimSpace(f.Policy) != "" {
		if policy, err = allocator.ParsePolicy(f.Policy); err != nil {
			return allocator.Request{}, fmt.Errorf("%w: %q", ErrInvalidPolicy, f.Policy)
		}
	}

	if policy == allocator.PolicyDenominationRandom {
		bills, err := ParseBills(f.Bills)
		if err != nil {
			return allocator.Request{}, err
		}
		if len(bills) == 0 {
			return allocator.Request{}, fmt.Errorf("%w: no bills selected", ErrInvalidDenominationSpec)
		}
		if count > len(bills) {
			return allocator.Request{}, fmt.Errorf("%w: %d envelopes for %d bills, one bill per envelope", ErrCountExceedsSupply, count, len(bills))
		}
		var sum int64
		for _, b := range bills {
			if b > math.MaxInt64-sum {
				return allocator.Request{}, fmt.Errorf("%w: bills total overflows", ErrInvalidDenominationSpec)
			}
			sum += b
		}
		return allocator.Request{
			TotalAmount:   sum,
			EnvelopeCount: count,
			Policy:        policy,
			Denominations: bills,
		}, nil
	}

	amount, err := parseAmount(f.Amount)
	if err != nil || amount <= 0 {
		return allocator.Request{}, fmt.Errorf("%w: %q", ErrInvalidAmount, f.Amount)
	}

	return allocator.Request{
		TotalAmount:   amount,
		EnvelopeCount: count,
		Policy:        policy,
	}, nil
}

// parseAmount remove separadores de milhar antes de converter. O dong não tem
// casas decimais, então "." e "," são sempre agrupamento: "1.5" vira 15.
func parseAmount(s string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '.', '_', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	return strconv.ParseInt(cleaned, 10, 64)
}
