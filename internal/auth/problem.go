package auth

import (
	"errors"
	"fmt"

	"github.com/dropDatabas3/revauth/internal/transport"
)

// ProblemKind is the closed set of failure classes a run can end in.
type ProblemKind int

const (
	// ProblemUnconfigured: consumer credentials missing at run time.
	ProblemUnconfigured ProblemKind = iota
	// ProblemNoSystemAccount: no account of this provider in the store.
	ProblemNoSystemAccount
	// ProblemAccessNotGranted: the user declined account access.
	ProblemAccessNotGranted
	// ProblemUserCancelled: the user declined at confirmation/selection.
	ProblemUserCancelled
	// ProblemAccountNeedsReauth: the account must log in again
	// (Facebook: relogin required; Twitter: account banned).
	ProblemAccountNeedsReauth
	// ProblemNetworkFailure: transport-level failure, Code carries the
	// transport's numeric code.
	ProblemNetworkFailure
	// ProblemProviderFailure: opaque provider-side failure. An escape hatch
	// for behavior not yet in the taxonomy, never a reason to crash.
	ProblemProviderFailure
	// ProblemAccountStoreFailure: opaque store-side failure; same escape
	// hatch on the OS side.
	ProblemAccountStoreFailure
	// ProblemAlreadyRun: a second Run on a consumed instance. Defined
	// behavior instead of the legacy "undefined if reused".
	ProblemAlreadyRun
)

func (k ProblemKind) String() string {
	switch k {
	case ProblemUnconfigured:
		return "unconfigured"
	case ProblemNoSystemAccount:
		return "no_system_account"
	case ProblemAccessNotGranted:
		return "access_not_granted"
	case ProblemUserCancelled:
		return "user_cancelled"
	case ProblemAccountNeedsReauth:
		return "account_needs_reauth"
	case ProblemNetworkFailure:
		return "network_failure"
	case ProblemProviderFailure:
		return "provider_failure"
	case ProblemAccountStoreFailure:
		return "account_store_failure"
	case ProblemAlreadyRun:
		return "already_run"
	default:
		return "unknown"
	}
}

// Problem is the structured failure a run delivers instead of Credentials.
// Exactly one of the two is produced per run.
type Problem struct {
	Kind    ProblemKind
	Code    int // transport code, NetworkFailure only
	Message string
}

func (p *Problem) Error() string {
	if p.Message == "" {
		return p.Kind.String()
	}
	return fmt.Sprintf("%s: %s", p.Kind, p.Message)
}

func unconfigured(msg string) *Problem {
	return &Problem{Kind: ProblemUnconfigured, Message: msg}
}

func noSystemAccount() *Problem {
	return &Problem{Kind: ProblemNoSystemAccount}
}

func accessNotGranted() *Problem {
	return &Problem{Kind: ProblemAccessNotGranted}
}

func userCancelled() *Problem {
	return &Problem{Kind: ProblemUserCancelled}
}

func accountNeedsReauth(msg string) *Problem {
	return &Problem{Kind: ProblemAccountNeedsReauth, Message: msg}
}

func providerFailure(format string, args ...any) *Problem {
	return &Problem{Kind: ProblemProviderFailure, Message: fmt.Sprintf(format, args...)}
}

func accountStoreFailure(msg string) *Problem {
	return &Problem{Kind: ProblemAccountStoreFailure, Message: msg}
}

func alreadyRun() *Problem {
	return &Problem{Kind: ProblemAlreadyRun, Message: "authenticator instance already consumed"}
}

// networkFailure maps a transport error onto the taxonomy, carrying its
// numeric code when one exists.
func networkFailure(err error) *Problem {
	var te *transport.Error
	if errors.As(err, &te) {
		return &Problem{Kind: ProblemNetworkFailure, Code: te.Code, Message: te.Message}
	}
	return &Problem{Kind: ProblemNetworkFailure, Code: -1, Message: err.Error()}
}
