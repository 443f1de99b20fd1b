package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dropDatabas3/revauth/internal/accounts"
	"github.com/dropDatabas3/revauth/internal/metrics"
	"github.com/dropDatabas3/revauth/internal/observability/logger"
	"github.com/dropDatabas3/revauth/internal/transport"
)

// base carries what both authenticators share: the account store, a scoped
// logger, and the enumerate/renew/parse utilities.
type base struct {
	store accounts.Store
	log   *zap.Logger
	runID string
}

func newBase(store accounts.Store, provider accounts.Provider) base {
	runID := uuid.NewString()
	return base{
		store: store,
		log:   logger.Named("auth").With(logger.Provider(string(provider)), logger.RunID(runID)),
		runID: runID,
	}
}

// enumerate requests access and lists accounts, mapping every outcome onto
// the problem taxonomy. A granted request with an empty list counts as "no
// system account" just like the store's own no-account code.
func (b *base) enumerate(ctx context.Context, provider accounts.Provider, opts accounts.AccessOptions) ([]accounts.Handle, *Problem) {
	if err := b.store.RequestAccess(ctx, provider, opts); err != nil {
		status, msg := accounts.Classify(err)
		switch status {
		case accounts.AccessDenied:
			b.log.Info("account access declined")
			return nil, accessNotGranted()
		case accounts.AccessNoAccount:
			b.log.Info("no account of this provider in the store")
			return nil, noSystemAccount()
		default:
			b.log.Warn("account access request failed", logger.Err(err))
			return nil, accountStoreFailure(msg)
		}
	}

	handles := b.store.List(provider)
	if len(handles) == 0 {
		b.log.Info("access granted but store is empty")
		return nil, noSystemAccount()
	}
	b.log.Debug("accounts enumerated", logger.Count(len(handles)))
	return handles, nil
}

// renew asks the store to refresh the handle's credential. Success requires
// the store's explicit Renewed outcome; everything else becomes a failure
// message for the caller to surface.
func (b *base) renew(ctx context.Context, h accounts.Handle) (accounts.Handle, error) {
	outcome, err := b.store.Renew(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("credential renewal failed: %w", err)
	}
	if outcome != accounts.Renewed {
		return nil, fmt.Errorf("credential renewal rejected by store (outcome %d)", outcome)
	}
	b.log.Debug("credential renewed")
	return h, nil
}

// parseJSON is a best-effort parse: malformed input yields ok=false, never an
// error the caller has to thread through.
func parseJSON(b []byte) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, false
	}
	return m, true
}

// jsonString extracts a non-empty string field from a parsed body.
func jsonString(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// validateResponse applies the shared response-validation policy: transport
// errors become network failures, a missing response or body is opaque, and a
// non-2xx status is opaque with any decodable body text appended.
func validateResponse(resp *transport.Response, err error) *Problem {
	if err != nil {
		return networkFailure(err)
	}
	if resp == nil {
		return providerFailure("no response metadata")
	}
	if resp.Body == nil {
		return providerFailure("empty response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if txt := strings.TrimSpace(string(resp.Body)); txt != "" {
			return providerFailure("http %d: %s", resp.StatusCode, txt)
		}
		return providerFailure("http %d", resp.StatusCode)
	}
	return nil
}

// finish records the outcome metrics and logs it. Returns its arguments so
// call sites can `return b.finish(provider, creds, p)`.
func (b *base) finish(provider accounts.Provider, creds *Credentials, p *Problem) (*Credentials, *Problem) {
	if p != nil {
		metrics.RunProblems.WithLabelValues(string(provider), p.Kind.String()).Inc()
		b.log.Warn("run ended in problem", logger.Kind(p.Kind.String()), logger.Err(p))
		return nil, p
	}
	metrics.RunsSucceeded.WithLabelValues(string(provider)).Inc()
	b.log.Info("run succeeded")
	return creds, nil
}
