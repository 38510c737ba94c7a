package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"autocotizar/go_backend/internal/domain/quote"
)

var (
	QuotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autocotizar_quotes_total",
			Help: "Quotes built, by channel (web, batch)",
		},
		[]string{"channel"},
	)
	QuoteLinesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autocotizar_quote_lines_total",
			Help: "Priced quote lines, by match kind",
		},
		[]string{"match_kind"},
	)
	RegisterAppendsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "autocotizar_register_appends_total",
			Help: "Rows appended to the quote register",
		},
	)
	RejectedRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autocotizar_rejected_requests_total",
			Help: "Quote requests rejected, by reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(QuotesTotal, QuoteLinesTotal, RegisterAppendsTotal, RejectedRequestsTotal)
}

func ObserveQuote(channel string, q quote.Quote) {
	QuotesTotal.WithLabelValues(channel).Inc()
	for _, l := range q.Lines {
		QuoteLinesTotal.WithLabelValues(string(l.MatchKind)).Inc()
	}
}

func Handler() http.Handler { return promhttp.Handler() }
