package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator-related Prometheus metrics. Defined in a standalone package so
// both authenticators and any embedding application share one registry surface.

var (
	RunsStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "revauth_runs_started_total",
		Help: "Authenticator runs started, by provider",
	}, []string{"provider"})

	RunsSucceeded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "revauth_runs_succeeded_total",
		Help: "Runs that produced credentials, by provider",
	}, []string{"provider"})

	RunProblems = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "revauth_run_problems_total",
		Help: "Runs that ended in a problem, by provider and problem kind",
	}, []string{"provider", "kind"})

	TokenRenewals = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "revauth_facebook_token_renewals_total",
		Help: "Facebook token renewal attempts",
	})

	AuthRestarts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "revauth_facebook_reauth_restarts_total",
		Help: "Facebook runs restarted after a revoked-permission error",
	})
)

// Register registers the authenticator metrics on the given registry
// (or the default one if nil). Re-registration is tolerated.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		RunsStarted, RunsSucceeded, RunProblems, TokenRenewals, AuthRestarts,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
