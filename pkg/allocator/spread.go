package allocator

// spreadRemainder soma 1 unidade por vez em shares[pick(step)] até zerar o
// resto. É o ajuste comum às políticas que truncam as partes com floor:
// EQUAL escolhe em round-robin, WEIGHTED_RANDOM escolhe ao acaso.
func spreadRemainder(shares []int64, remainder int64, pick func(step int) int) {
	if len(shares) == 0 {
		return
	}
	for step := 0; remainder > 0; step++ {
		shares[pick(step)]++
		remainder--
	}
}

// shuffle é um Fisher–Yates: para i do último índice até 1, troca i com um
// índice uniforme em [0, i].
func shuffle(values []int64, src Source) {
	for i := len(values) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		values[i], values[j] = values[j], values[i]
	}
}
