package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
	"golang.org/x/oauth2"

	"github.com/dropDatabas3/revauth/internal/accounts"
)

// codeUnknown is reported when the underlying error exposes no numeric code.
const codeUnknown = -1

var _ SignedClient = (*Client)(nil)

// Client is the production SignedClient. OAuth 1.0a signing (HMAC-SHA1) is
// delegated to dghubble/oauth1; plain token signing rides a bearer header via
// x/oauth2.
type Client struct {
	oauthCfg *oauth1.Config
	timeout  time.Duration
}

// New builds a Client for the given consumer identity. Twitter calls need
// both values; a Facebook-only caller may pass empty strings.
func New(consumerKey, consumerSecret string) *Client {
	return &Client{
		oauthCfg: oauth1.NewConfig(consumerKey, consumerSecret),
		timeout:  10 * time.Second,
	}
}

func (c *Client) AccountSigned(ctx context.Context, h accounts.Handle, method, rawurl string, params url.Values) (*Response, error) {
	// Stores that expose the full token pair get proper OAuth 1.0a signing;
	// otherwise the cached token goes out as a bearer credential, which is
	// what the Graph API expects.
	if oh, ok := h.(accounts.OAuth1Handle); ok {
		if tok, sec, ok := oh.TokenPair(); ok {
			return c.UserSigned(ctx, tok, sec, method, rawurl, params)
		}
	}
	tok, ok := h.Token()
	if !ok {
		return nil, &Error{Code: codeUnknown, Message: "account has no cached token"}
	}
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok}))
	hc.Timeout = c.timeout
	return c.do(ctx, hc, method, rawurl, params)
}

func (c *Client) ConsumerSigned(ctx context.Context, method, rawurl string, params url.Values) (*Response, error) {
	// An empty token pair makes oauth1 sign with the consumer secret alone,
	// the signature base the request_token endpoint expects.
	hc := c.oauthCfg.Client(ctx, oauth1.NewToken("", ""))
	hc.Timeout = c.timeout
	return c.do(ctx, hc, method, rawurl, params)
}

func (c *Client) UserSigned(ctx context.Context, token, secret, method, rawurl string, params url.Values) (*Response, error) {
	hc := c.oauthCfg.Client(ctx, oauth1.NewToken(token, secret))
	hc.Timeout = c.timeout
	return c.do(ctx, hc, method, rawurl, params)
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, rawurl string, params url.Values) (*Response, error) {
	var req *http.Request
	var err error
	if method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, method, rawurl, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		u, perr := url.Parse(rawurl)
		if perr != nil {
			return nil, &Error{Code: codeUnknown, Message: perr.Error()}
		}
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		req, err = http.NewRequestWithContext(ctx, method, u.String(), nil)
	}
	if err != nil {
		return nil, &Error{Code: codeUnknown, Message: err.Error()}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &Error{Code: codeUnknown, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Code: codeUnknown, Message: err.Error()}
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
