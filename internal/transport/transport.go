// Package transport performs the signed HTTP calls the authenticators need.
// Three signing modes exist: with the account's store-cached token (profile
// fetch, reverse-auth exchange), with the consumer identity alone (OAuth 1.0a
// request_token), and with consumer plus user token (verify_credentials).
package transport

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dropDatabas3/revauth/internal/accounts"
)

// Response is the outcome of a completed HTTP call. Body is fully read.
type Response struct {
	StatusCode int
	Body       []byte
}

// Error is a transport-level failure (connection, DNS, timeout), carrying a
// numeric code for the problem taxonomy. Provider-side HTTP errors are not
// transport errors; they arrive as a Response with a non-2xx status.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport error %d: %s", e.Code, e.Message)
}

// SignedClient issues signed requests on behalf of a run. Mocked in tests;
// the production implementation is Client.
type SignedClient interface {
	// AccountSigned signs with the account's store-held credential.
	AccountSigned(ctx context.Context, h accounts.Handle, method, rawurl string, params url.Values) (*Response, error)

	// ConsumerSigned signs with the consumer identity only (no user token).
	ConsumerSigned(ctx context.Context, method, rawurl string, params url.Values) (*Response, error)

	// UserSigned signs with both the consumer identity and the given
	// user token/secret pair.
	UserSigned(ctx context.Context, token, secret, method, rawurl string, params url.Values) (*Response, error)
}
