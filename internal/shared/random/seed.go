// Package random gera sementes e fontes de aleatoriedade para as rodadas.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed gera uma semente com crypto/rand. Nunca retorna zero, que nas
// configurações significa "sortear uma semente".
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}

// NewSource cria uma fonte determinística para a semente. Não é segura para
// uso concorrente: crie uma por rodada.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
