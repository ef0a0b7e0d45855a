package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Game agrupa os coletores das rodadas de envelopes, rotulados por política
type Game struct {
	RoundsDealt     *prometheus.CounterVec
	AmountDealt     *prometheus.CounterVec
	EnvelopesOpened *prometheus.CounterVec
}

// NewGame cria e registra os coletores no registerer informado
func NewGame(reg prometheus.Registerer) *Game {
	g := &Game{
		RoundsDealt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "envelope_rounds_dealt_total",
			Help: "Rodadas distribuídas",
		}, []string{"policy"}),
		AmountDealt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "envelope_amount_dealt_total",
			Help: "Soma dos valores distribuídos (menor unidade da moeda)",
		}, []string{"policy"}),
		EnvelopesOpened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "envelope_opened_total",
			Help: "Envelopes abertos",
		}, []string{"policy"}),
	}
	reg.MustRegister(g.RoundsDealt, g.AmountDealt, g.EnvelopesOpened)
	return g
}

// OnDealt registra uma rodada distribuída
func (g *Game) OnDealt(policy string, total int64) {
	g.RoundsDealt.WithLabelValues(policy).Inc()
	g.AmountDealt.WithLabelValues(policy).Add(float64(total))
}

// OnOpened registra a abertura de um envelope
func (g *Game) OnOpened(policy string) {
	g.EnvelopesOpened.WithLabelValues(policy).Inc()
}
