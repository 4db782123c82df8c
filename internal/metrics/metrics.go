// Package metrics содержит Prometheus-коллекторы сервиса.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codejam",
		Subsystem: "bot",
		Name:      "commands_total",
		Help:      "Total slash commands handled, by command and outcome.",
	}, []string{"command", "outcome"})

	mgmtRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codejam",
		Subsystem: "mgmt",
		Name:      "requests_total",
		Help:      "Total management API requests, by method and status code (0 = transport error).",
	}, []string{"method", "status"})

	gateTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codejam",
		Subsystem: "gate",
		Name:      "transitions_total",
		Help:      "Total confirmation gate transitions, by terminal state.",
	}, []string{"state"})

	teardownFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codejam",
		Subsystem: "teardown",
		Name:      "failures_total",
		Help:      "Total per-item teardown failures, by item kind.",
	}, []string{"kind"})
)

// ObserveCommand учитывает обработанную команду.
func ObserveCommand(command, outcome string) {
	commandsTotal.WithLabelValues(command, outcome).Inc()
}

// ObserveMgmtRequest учитывает запрос к API управления.
func ObserveMgmtRequest(method string, status int) {
	mgmtRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// ObserveGateTransition учитывает переход шлюза подтверждения.
func ObserveGateTransition(state string) {
	gateTransitionsTotal.WithLabelValues(state).Inc()
}

// ObserveTeardownFailure учитывает неудачное удаление при завершении джема.
func ObserveTeardownFailure(kind string) {
	teardownFailuresTotal.WithLabelValues(kind).Inc()
}
