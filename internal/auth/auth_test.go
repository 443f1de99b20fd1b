package auth

import (
	"context"
	"net/url"

	"github.com/dropDatabas3/revauth/internal/accounts"
	"github.com/dropDatabas3/revauth/internal/transport"
)

// Shared fakes for the authenticator tests: a scriptable account store, a
// scriptable signed client and canned delegates.

type fakeHandle struct {
	id    string
	token string
}

func (h *fakeHandle) Identifier() string { return h.id }

func (h *fakeHandle) Token() (string, bool) { return h.token, h.token != "" }

type fakeStore struct {
	accessErr    error
	handles      []accounts.Handle
	renewOutcome accounts.RenewOutcome
	renewErr     error

	accessCalls int
	renewCalls  int
}

func (s *fakeStore) RequestAccess(ctx context.Context, p accounts.Provider, opts accounts.AccessOptions) error {
	s.accessCalls++
	return s.accessErr
}

func (s *fakeStore) List(p accounts.Provider) []accounts.Handle {
	return s.handles
}

func (s *fakeStore) Renew(ctx context.Context, h accounts.Handle) (accounts.RenewOutcome, error) {
	s.renewCalls++
	return s.renewOutcome, s.renewErr
}

type roundTrip struct {
	resp *transport.Response
	err  error
}

func ok(body string) roundTrip {
	return roundTrip{resp: &transport.Response{StatusCode: 200, Body: []byte(body)}}
}

func status(code int, body string) roundTrip {
	return roundTrip{resp: &transport.Response{StatusCode: code, Body: []byte(body)}}
}

func fail(err error) roundTrip {
	return roundTrip{err: err}
}

// fakeClient pops scripted responses per signing mode, in order, and records
// the parameters each call carried.
type fakeClient struct {
	account  []roundTrip
	consumer []roundTrip
	user     []roundTrip

	accountCalls  int
	consumerCalls int
	userCalls     int

	lastAccountParams  url.Values
	lastConsumerParams url.Values
	lastUserParams     url.Values
	lastUserToken      string
	lastUserSecret     string
}

func pop(script *[]roundTrip) roundTrip {
	if len(*script) == 0 {
		return fail(&transport.Error{Code: -1, Message: "no scripted response"})
	}
	rt := (*script)[0]
	*script = (*script)[1:]
	return rt
}

func (c *fakeClient) AccountSigned(ctx context.Context, h accounts.Handle, method, rawurl string, params url.Values) (*transport.Response, error) {
	c.accountCalls++
	c.lastAccountParams = params
	rt := pop(&c.account)
	return rt.resp, rt.err
}

func (c *fakeClient) ConsumerSigned(ctx context.Context, method, rawurl string, params url.Values) (*transport.Response, error) {
	c.consumerCalls++
	c.lastConsumerParams = params
	rt := pop(&c.consumer)
	return rt.resp, rt.err
}

func (c *fakeClient) UserSigned(ctx context.Context, token, secret, method, rawurl string, params url.Values) (*transport.Response, error) {
	c.userCalls++
	c.lastUserParams = params
	c.lastUserToken = token
	c.lastUserSecret = secret
	rt := pop(&c.user)
	return rt.resp, rt.err
}

type confirmDelegate struct {
	answer bool
	asked  int
}

func (d *confirmDelegate) ConfirmAccount(ctx context.Context, identifier string) (bool, error) {
	d.asked++
	return d.answer, nil
}

type selectDelegate struct {
	choice string
	seen   []string
}

func (d *selectDelegate) SelectAccount(ctx context.Context, identifiers []string) (string, error) {
	d.seen = identifiers
	return d.choice, nil
}
