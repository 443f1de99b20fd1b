// Package accounts models the device account store the authenticators sit on
// top of: opaque handles to pre-authorized social accounts, an access-request
// operation guarded by user permission, and credential renewal. The store
// itself lives in the host environment; everything here is the contract plus
// the classification policy for its access errors.
package accounts

import (
	"context"
	"fmt"
)

// Provider identifies one supported identity provider.
type Provider string

const (
	ProviderFacebook Provider = "facebook"
	ProviderTwitter  Provider = "twitter"
)

// Handle is an opaque reference to one account registered in the store.
// Implementations belong to the store; an authenticator holds at most one
// chosen handle for the lifetime of a run.
type Handle interface {
	// Identifier is the human-readable account name (username, email, phone).
	Identifier() string

	// Token returns the store-cached OAuth token for the account, if any.
	Token() (string, bool)
}

// OAuth1Handle is implemented by handles whose store exposes a full OAuth 1.0a
// token pair. Stores that sign on the account's behalf internally (the usual
// case on-device) do not implement it.
type OAuth1Handle interface {
	Handle
	TokenPair() (token, secret string, ok bool)
}

// AccessOptions carries provider-specific options for an access request.
// Only Facebook uses them.
type AccessOptions struct {
	AppID       string
	Permissions []string
	Audience    string
}

// RenewOutcome is the store's verdict on a credential renewal.
type RenewOutcome int

const (
	// RenewFailed means the store could not reach the provider.
	RenewFailed RenewOutcome = iota
	// Renewed means the cached credential is valid again.
	Renewed
	// RenewRejected means the provider refused; the user must log in again.
	RenewRejected
)

// Store is the external account-store collaborator.
type Store interface {
	// RequestAccess asks the user for permission to read accounts of the
	// given provider. nil means granted; a *StoreError (or any other error)
	// means not granted, subject to the Classify policy.
	RequestAccess(ctx context.Context, p Provider, opts AccessOptions) error

	// List returns the accounts of the given provider currently registered.
	// Only meaningful after a granted RequestAccess.
	List(p Provider) []Handle

	// Renew asks the store to refresh the account's cached credential.
	Renew(ctx context.Context, h Handle) (RenewOutcome, error)
}

// StoreError is an access-request failure as reported by the store, carrying
// the store's numeric code and whatever detail payload accompanied it.
type StoreError struct {
	Code   int
	Detail string
}

func (e *StoreError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("account store error %d", e.Code)
	}
	return fmt.Sprintf("account store error %d: %s", e.Code, e.Detail)
}
