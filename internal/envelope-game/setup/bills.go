package setup

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// billUnit converte o atalho em milhares para a menor unidade (50 -> 50.000)
	billUnit int64 = 1000
	// maxBills limita o tamanho do conjunto expandido
	maxBills = 10_000
)

// ParseBills expande o atalho "50x3, 20x2" em cédulas de 50.000 (3x) e 20.000 (2x).
// Cada item é "<valor>x<quantidade>" com valor em milhares; "x", "X" e "*" são
// aceitos e um valor sem quantidade vale uma cédula. Quantidade zero é permitida.
// A ordem de saída segue a ordem dos itens.
func ParseBills(s string) ([]int64, error) {
	var bills []int64
	if strings.TrimSpace(s) == "" {
		return bills, nil
	}

	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		valuePart, countPart := item, "1"
		if i := strings.IndexAny(item, "xX*"); i >= 0 {
			valuePart, countPart = item[:i], item[i+1:]
		}

		value, err := strconv.ParseInt(strings.TrimSpace(valuePart), 10, 64)
		if err != nil || value <= 0 || value > math.MaxInt64/billUnit {
			return nil, fmt.Errorf("%w: bad bill value in %q", ErrInvalidDenominationSpec, item)
		}
		count, err := strconv.Atoi(strings.TrimSpace(countPart))
		if err != nil || count < 0 {
			return nil, fmt.Errorf("%w: bad bill count in %q", ErrInvalidDenominationSpec, item)
		}
		if len(bills)+count > maxBills {
			return nil, fmt.Errorf("%w: more than %d bills", ErrInvalidDenominationSpec, maxBills)
		}

		for i := 0; i < count; i++ {
			bills = append(bills, value*billUnit)
		}
	}
	return bills, nil
}
