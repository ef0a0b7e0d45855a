// Package allocator divide um valor (ou um conjunto de cédulas) em envelopes
// segundo uma política de distribuição.
//
// Allocate é total: nunca retorna erro nem entra em pânico. Entradas fora do
// domínio degradam para saídas determinísticas (lista vazia, envelopes zerados
// ou completados com zero). Validar a entrada é responsabilidade do chamador.
package allocator

import (
	"errors"
	"math"
	"strings"
)

// Policy define como o total é distribuído entre os envelopes
type Policy string

const (
	PolicyEqual              Policy = "EQUAL"
	PolicyWeightedRandom     Policy = "WEIGHTED_RANDOM"
	PolicyDenominationRandom Policy = "DENOMINATION_RANDOM"
)

// minPerEnvelope é o piso garantido por envelope na política WEIGHTED_RANDOM
const minPerEnvelope int64 = 1

var ErrUnknownPolicy = errors.New("unknown distribution policy")

// ParsePolicy aceita os nomes das políticas sem diferenciar maiúsculas.
// "RANDOM" é aceito como alias de WEIGHTED_RANDOM.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(PolicyEqual):
		return PolicyEqual, nil
	case string(PolicyWeightedRandom), "RANDOM":
		return PolicyWeightedRandom, nil
	case string(PolicyDenominationRandom):
		return PolicyDenominationRandom, nil
	}
	return "", ErrUnknownPolicy
}

// Source é a fonte de aleatoriedade injetada. *rand.Rand (math/rand) satisfaz
// a interface; não compartilhe a mesma instância entre goroutines.
type Source interface {
	Float64() float64 // [0, 1)
	Intn(n int) int   // [0, n)
}

// Request descreve uma divisão. Valores na menor unidade da moeda.
// TotalAmount é ignorado em DENOMINATION_RANDOM: o total passa a ser a soma
// das cédulas sorteadas (ver Total).
type Request struct {
	TotalAmount   int64
	EnvelopeCount int
	Policy        Policy
	Denominations []int64
}

// Envelope é criado por Allocate e pertence ao chamador durante uma rodada
type Envelope struct {
	ID     int   `json:"id"`
	Amount int64 `json:"amount"`
	Opened bool  `json:"opened"`
}

// Allocate produz EnvelopeCount envelopes para a política pedida. A ordem final
// é embaralhada antes de atribuir os IDs, então a posição não revela nada sobre
// a geração. Políticas desconhecidas caem em WEIGHTED_RANDOM.
func Allocate(req Request, src Source) []Envelope {
	n := req.EnvelopeCount
	if n <= 0 {
		return []Envelope{}
	}

	var amounts []int64
	switch req.Policy {
	case PolicyEqual:
		amounts = equal(req.TotalAmount, n)
	case PolicyDenominationRandom:
		amounts = fromDenominations(req.Denominations, n, src)
	default:
		amounts = weighted(req.TotalAmount, n, src)
	}

	shuffle(amounts, src)

	envs := make([]Envelope, n)
	for i, amt := range amounts {
		envs[i] = Envelope{ID: i, Amount: amt}
	}
	return envs
}

// Total soma os valores dos envelopes
func Total(envs []Envelope) int64 {
	var sum int64
	for _, e := range envs {
		sum += e.Amount
	}
	return sum
}

// equal dá floor(total/n) a cada envelope e reparte o resto em round-robin
// a partir do índice 0. Diferença máxima entre envelopes: 1 unidade.
func equal(total int64, n int) []int64 {
	base := total / int64(n)
	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
	}
	spreadRemainder(shares, total-base*int64(n), func(step int) int { return step % n })
	return shares
}

// weighted garante 1 unidade por envelope e reparte o restante por pesos
// aleatórios. Sem saldo para o piso, todos recebem zero.
func weighted(total int64, n int, src Source) []int64 {
	shares := make([]int64, n)
	if total < int64(n) {
		return shares
	}
	remaining := total - int64(n)*minPerEnvelope

	weights := make([]float64, n)
	var weightSum float64
	for i := range weights {
		weights[i] = src.Float64()
		weightSum += weights[i]
	}

	var distributed int64
	if weightSum > 0 {
		for i, w := range weights {
			// limita ainda em float: perto de MaxInt64 float64(remaining) arredonda
			// para 2^63 e a conversão direta para int64 estoura
			f := math.Floor(w / weightSum * float64(remaining))
			left := remaining - distributed
			var share int64
			switch {
			case f <= 0:
			case f >= float64(left):
				share = left
			default:
				share = int64(f)
			}
			shares[i] = share
			distributed += share
		}
	}

	spreadRemainder(shares, remaining-distributed, func(int) int { return src.Intn(n) })

	for i := range shares {
		shares[i] += minPerEnvelope
	}
	return shares
}

// fromDenominations embaralha as cédulas e entrega uma por envelope.
// Envelopes além do número de cédulas recebem zero.
func fromDenominations(denominations []int64, n int, src Source) []int64 {
	bills := make([]int64, 0, len(denominations))
	for _, d := range denominations {
		if d > 0 {
			bills = append(bills, d)
		}
	}
	shuffle(bills, src)

	amounts := make([]int64, n)
	copy(amounts, bills)
	return amounts
}
