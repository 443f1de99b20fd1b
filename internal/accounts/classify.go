package accounts

// Access-error classification policy.
//
// The store reports access-request failures with numeric codes that are
// empirical, not documented. Two codes carry meaning; everything else is
// downgraded to a generic store failure carrying the stringified error,
// because at that level the failures are otherwise indistinguishable.
const (
	// CodeNoAccount: no account of the requested type exists in the store.
	// Vendor-specific, observed value; may change underneath us.
	CodeNoAccount = 6

	// CodePermissionDenied: the user declined the access request. Only
	// meaningful with an empty detail payload; with a payload attached the
	// same code has been observed for unrelated store failures.
	CodePermissionDenied = 7
)

// AccessStatus is the classified outcome of a failed access request.
type AccessStatus int

const (
	// AccessDenied: the user declined account access.
	AccessDenied AccessStatus = iota
	// AccessNoAccount: no account of this provider exists.
	AccessNoAccount
	// AccessFailed: any other store failure; message carries the detail.
	AccessFailed
)

// Classify maps an access-request error onto the policy above.
// The returned message is only meaningful for AccessFailed.
func Classify(err error) (AccessStatus, string) {
	se, ok := err.(*StoreError)
	if !ok {
		return AccessFailed, err.Error()
	}
	switch {
	case se.Code == CodePermissionDenied && se.Detail == "":
		return AccessDenied, ""
	case se.Code == CodeNoAccount && se.Detail == "":
		return AccessNoAccount, ""
	default:
		return AccessFailed, se.Error()
	}
}
