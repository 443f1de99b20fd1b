package auth

import "context"

// The delegates are the two user-interaction points of a run. They are
// invoked synchronously from the Run goroutine; an implementation that needs
// a UI thread is responsible for marshaling onto it and blocking until the
// user answers.

// FacebookDelegate confirms use of the single system Facebook account.
type FacebookDelegate interface {
	// ConfirmAccount is shown the account's display identifier.
	// false (or an error) means the user declined.
	ConfirmAccount(ctx context.Context, identifier string) (bool, error)
}

// TwitterDelegate picks one of the enumerated Twitter accounts.
type TwitterDelegate interface {
	// SelectAccount receives every enumerated identifier. Returning "" (or
	// an error) means the user declined; returning an identifier not in the
	// list is reported as a store failure, distinct from a clean decline.
	SelectAccount(ctx context.Context, identifiers []string) (string, error)
}
