package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/dropDatabas3/revauth/internal/accounts"
	"github.com/dropDatabas3/revauth/internal/config"
	"github.com/dropDatabas3/revauth/internal/metrics"
	"github.com/dropDatabas3/revauth/internal/observability/logger"
	"github.com/dropDatabas3/revauth/internal/transport"
	"github.com/dropDatabas3/revauth/internal/util"
)

const (
	twitterRequestTokenURL = "https://api.twitter.com/oauth/request_token"
	twitterAccessTokenURL  = "https://api.twitter.com/oauth/access_token"
	twitterVerifyURL       = "https://api.twitter.com/1.1/account/verify_credentials.json"

	// A banned account gets an HTML notice page from the exchange endpoint
	// instead of the short key/value blob. There is no documented contract;
	// the page is just much larger than any valid blob.
	banPageSizeThreshold = 3000

	avatarNormalSuffix = "_normal."
	avatarLargeSuffix  = "_400x400."
)

// Twitter negotiates an access token via OAuth 1.0a reverse auth for one of
// the system Twitter accounts. One instance serves exactly one run; tokens
// are never renewed in this flow.
type Twitter struct {
	base
	cfg      config.Twitter
	client   transport.SignedClient
	delegate TwitterDelegate

	started atomic.Bool
	handle  accounts.Handle
}

// NewTwitter builds a single-use Twitter authenticator.
func NewTwitter(cfg config.Twitter, store accounts.Store, client transport.SignedClient, delegate TwitterDelegate) *Twitter {
	return &Twitter{
		base:     newBase(store, accounts.ProviderTwitter),
		cfg:      cfg,
		client:   client,
		delegate: delegate,
	}
}

// Run executes the flow and returns exactly one of credentials or problem.
// The instance is consumed; a second call returns the already-run problem.
func (t *Twitter) Run(ctx context.Context) (*Credentials, *Problem) {
	if !t.started.CompareAndSwap(false, true) {
		return nil, alreadyRun()
	}
	metrics.RunsStarted.WithLabelValues(string(accounts.ProviderTwitter)).Inc()
	t.log.Info("run started")
	creds, p := t.run(ctx)
	return t.finish(accounts.ProviderTwitter, creds, p)
}

func (t *Twitter) run(ctx context.Context) (*Credentials, *Problem) {
	if t.cfg.ConsumerKey == "" || t.cfg.ConsumerSecret == "" {
		return nil, unconfigured("twitter consumer key/secret not set")
	}

	handles, p := t.enumerate(ctx, accounts.ProviderTwitter, accounts.AccessOptions{})
	if p != nil {
		return nil, p
	}

	if p := t.selectAccount(ctx, handles); p != nil {
		return nil, p
	}
	t.log.Debug("account selected", logger.Account(util.MaskEmail(t.handle.Identifier())))

	blob, p := t.requestReverseAuthToken(ctx)
	if p != nil {
		return nil, p
	}

	token, secret, p := t.exchangeForAccessToken(ctx, blob)
	if p != nil {
		return nil, p
	}

	return t.verifyCredentials(ctx, token, secret)
}

// selectAccount presents every identifier to the delegate. An empty choice is
// a clean decline; a non-empty choice that matches nothing means the store
// and the delegate disagree, which is a store failure, not a cancellation.
func (t *Twitter) selectAccount(ctx context.Context, handles []accounts.Handle) *Problem {
	identifiers := make([]string, len(handles))
	for i, h := range handles {
		identifiers[i] = h.Identifier()
	}

	choice, err := t.delegate.SelectAccount(ctx, identifiers)
	if err != nil || choice == "" {
		return userCancelled()
	}
	for _, h := range handles {
		if h.Identifier() == choice {
			t.handle = h
			return nil
		}
	}
	return accountStoreFailure("selected account not present in store: " + util.MaskEmail(choice))
}

// requestReverseAuthToken performs reverse-auth step 1: a consumer-only
// signed POST whose raw response body is the reverse-auth token blob.
func (t *Twitter) requestReverseAuthToken(ctx context.Context) (string, *Problem) {
	resp, err := t.client.ConsumerSigned(ctx, http.MethodPost, twitterRequestTokenURL,
		url.Values{"x_auth_mode": {"reverse_auth"}})
	if p := validateResponse(resp, err); p != nil {
		return "", p
	}
	return string(resp.Body), nil
}

// exchangeForAccessToken performs reverse-auth step 2: the blob goes back
// signed with the account's store-held credential, and a short URL-encoded
// body with the user token pair comes out.
func (t *Twitter) exchangeForAccessToken(ctx context.Context, blob string) (token, secret string, p *Problem) {
	resp, err := t.client.AccountSigned(ctx, t.handle, http.MethodPost, twitterAccessTokenURL, url.Values{
		"x_reverse_auth_parameters": {blob},
		"x_reverse_auth_target":     {t.cfg.ConsumerKey},
	})
	if err != nil {
		return "", "", networkFailure(err)
	}
	if resp == nil || resp.Body == nil {
		return "", "", providerFailure("empty exchange response")
	}

	// Ban check comes before everything else; the notice page must never be
	// fed to the query parser.
	if len(resp.Body) > banPageSizeThreshold {
		t.log.Warn("oversized exchange response, treating as ban notice", logger.Int("bytes", len(resp.Body)))
		return "", "", accountNeedsReauth("account appears to be banned")
	}
	if p := validateResponse(resp, nil); p != nil {
		return "", "", p
	}

	vals, perr := url.ParseQuery(string(resp.Body))
	if perr != nil {
		return "", "", providerFailure("unparsable exchange response: %v", perr)
	}
	token = vals.Get("oauth_token")
	secret = vals.Get("oauth_token_secret")
	if token == "" || secret == "" {
		return "", "", providerFailure("exchange response missing oauth_token or oauth_token_secret")
	}
	return token, secret, nil
}

// verifyCredentials performs the final signed GET with the fresh user token
// and normalizes the profile into Credentials.
func (t *Twitter) verifyCredentials(ctx context.Context, token, secret string) (*Credentials, *Problem) {
	resp, err := t.client.UserSigned(ctx, token, secret, http.MethodGet, twitterVerifyURL, url.Values{
		"include_email":    {"true"},
		"include_entities": {"true"},
		"skip_status":      {"false"},
	})
	if p := validateResponse(resp, err); p != nil {
		return nil, p
	}

	body, ok := parseJSON(resp.Body)
	if !ok {
		return nil, providerFailure("unparsable verify_credentials response")
	}

	id, okID := jsonString(body, "id_str")
	name, okName := jsonString(body, "name")
	screenName, okScreen := jsonString(body, "screen_name")
	avatar, okAvatar := jsonString(body, "profile_image_url_https")
	if !okID || !okName || !okScreen || !okAvatar {
		return nil, providerFailure("verify_credentials response missing required fields")
	}
	email, _ := body["email"].(string)

	return &Credentials{
		ID:          id,
		Name:        name,
		ScreenName:  screenName,
		Token:       token,
		TokenSecret: secret,
		Email:       email,
		AvatarURL:   strings.Replace(avatar, avatarNormalSuffix, avatarLargeSuffix, 1),
	}, nil
}
