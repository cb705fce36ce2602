package auth

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	gateBearer  = "bearer"
	gateAdmin   = "admin"
	gateSession = "session"
)

var gateDecisions = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "auth_gate_decisions_total",
		Help: "Number of authentication gate decisions, differentiated by gate and outcome.",
	},
	[]string{"gate", "outcome"},
)

// observe counts a gate decision.
func observe(gate string, err *Error) {
	outcome := "allowed"

	if err != nil {
		switch err.Status {
		case http.StatusUnauthorized:
			outcome = "unauthorized"
		case http.StatusForbidden:
			outcome = "forbidden"
		default:
			outcome = "error"
		}
	}

	gateDecisions.WithLabelValues(gate, outcome).Inc()
}
