package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/dropDatabas3/revauth/internal/accounts"
	"github.com/dropDatabas3/revauth/internal/config"
	"github.com/dropDatabas3/revauth/internal/metrics"
	"github.com/dropDatabas3/revauth/internal/observability/logger"
	"github.com/dropDatabas3/revauth/internal/transport"
	"github.com/dropDatabas3/revauth/internal/util"
)

const (
	graphProfileURL   = "https://graph.facebook.com/me"
	graphAvatarFormat = "https://graph.facebook.com/%s/picture?type=large"

	// Facebook signals expired/invalid tokens uniformly with this error
	// code; the sub-code tells them apart.
	graphCodeOAuth = 190
	// Sub-code for revoked app permission. Empirical, undocumented value.
	graphSubcodePermissionRevoked = 458
)

// Facebook negotiates an access token for the single system Facebook account
// and fetches the profile behind it. One instance serves exactly one run.
type Facebook struct {
	base
	cfg      config.Facebook
	client   transport.SignedClient
	delegate FacebookDelegate

	started atomic.Bool
	handle  accounts.Handle

	// One-shot retry flags; each backward edge of the run is usable once.
	renewTried  bool
	reauthTried bool
}

// NewFacebook builds a single-use Facebook authenticator.
func NewFacebook(cfg config.Facebook, store accounts.Store, client transport.SignedClient, delegate FacebookDelegate) *Facebook {
	return &Facebook{
		base:     newBase(store, accounts.ProviderFacebook),
		cfg:      cfg,
		client:   client,
		delegate: delegate,
	}
}

// Run executes the flow and returns exactly one of credentials or problem.
// The instance is consumed; a second call returns the already-run problem.
func (f *Facebook) Run(ctx context.Context) (*Credentials, *Problem) {
	if !f.started.CompareAndSwap(false, true) {
		return nil, alreadyRun()
	}
	metrics.RunsStarted.WithLabelValues(string(accounts.ProviderFacebook)).Inc()
	f.log.Info("run started")
	creds, p := f.run(ctx)
	return f.finish(accounts.ProviderFacebook, creds, p)
}

func (f *Facebook) run(ctx context.Context) (*Credentials, *Problem) {
	if f.cfg.AppID == "" {
		return nil, unconfigured("facebook app id not set")
	}

	permissions := f.cfg.Permissions
	if len(permissions) == 0 {
		permissions = config.DefaultFacebookPermissions
	}
	audience := f.cfg.Audience
	if audience == "" {
		audience = config.AudienceOnlyMe
	}
	opts := accounts.AccessOptions{
		AppID:       f.cfg.AppID,
		Permissions: permissions,
		Audience:    string(audience),
	}

	// Restart loop: a revoked-permission error re-runs the whole flow,
	// access prompt included, at most once.
	for {
		handles, p := f.enumerate(ctx, accounts.ProviderFacebook, opts)
		if p != nil {
			return nil, p
		}

		// The store holds at most one Facebook account; the first handle
		// is the account.
		f.handle = handles[0]
		f.log.Debug("account chosen", logger.Account(util.MaskEmail(f.handle.Identifier())))

		ok, err := f.delegate.ConfirmAccount(ctx, f.handle.Identifier())
		if err != nil || !ok {
			return nil, userCancelled()
		}

		creds, p, restart := f.fetchProfile(ctx)
		if restart {
			continue
		}
		return creds, p
	}
}

// fetchProfile issues the signed profile GET and applies the retry policy.
// restart=true means the caller must re-run the flow from enumeration.
func (f *Facebook) fetchProfile(ctx context.Context) (creds *Credentials, p *Problem, restart bool) {
	for {
		resp, err := f.client.AccountSigned(ctx, f.handle, http.MethodGet, graphProfileURL,
			url.Values{"fields": {"id,name,email"}})
		if err != nil {
			return nil, networkFailure(err), false
		}

		body, ok := parseJSON(resp.Body)
		if !ok {
			return nil, providerFailure("unparsable profile response"), false
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			ge, ok := decodeGraphError(body)
			if !ok {
				return nil, providerFailure("profile fetch http %d", resp.StatusCode), false
			}
			f.log.Debug("graph error", logger.Code(ge.Code), logger.Int("subcode", ge.Subcode))

			if ge.Code == graphCodeOAuth {
				if ge.Subcode == graphSubcodePermissionRevoked && !f.reauthTried {
					f.reauthTried = true
					metrics.AuthRestarts.Inc()
					f.log.Info("permission revoked, restarting authorization")
					return nil, nil, true
				}
				if !f.renewTried {
					f.renewTried = true
					metrics.TokenRenewals.Inc()
					h, err := f.renew(ctx, f.handle)
					if err != nil {
						return nil, accountNeedsReauth(err.Error()), false
					}
					f.handle = h
					continue
				}
				return nil, accountNeedsReauth("token renewal already attempted; system login required"), false
			}
			return nil, providerFailure("%s", ge), false
		}

		token, ok := f.handle.Token()
		if !ok {
			return nil, providerFailure("chosen account has no oauth token"), false
		}
		id, okID := jsonString(body, "id")
		name, okName := jsonString(body, "name")
		if !okID || !okName {
			return nil, providerFailure("profile response missing id or name"), false
		}
		email, _ := body["email"].(string)

		return &Credentials{
			ID:        id,
			Name:      name,
			Token:     token,
			Email:     email,
			AvatarURL: fmt.Sprintf(graphAvatarFormat, id),
		}, nil, false
	}
}

// graphError is the structured provider error object the Graph API returns.
type graphError struct {
	Code    int
	Subcode int
	Type    string
	Message string
}

func (e graphError) String() string {
	return fmt.Sprintf("graph error %d/%d (%s): %s", e.Code, e.Subcode, e.Type, e.Message)
}

func decodeGraphError(body map[string]any) (graphError, bool) {
	raw, ok := body["error"].(map[string]any)
	if !ok {
		return graphError{}, false
	}
	var ge graphError
	if v, ok := raw["code"].(float64); ok {
		ge.Code = int(v)
	} else {
		return graphError{}, false
	}
	if v, ok := raw["error_subcode"].(float64); ok {
		ge.Subcode = int(v)
	}
	ge.Type, _ = raw["type"].(string)
	ge.Message, _ = raw["message"].(string)
	return ge, true
}
