package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/revauth/internal/accounts"
	"github.com/dropDatabas3/revauth/internal/config"
	"github.com/dropDatabas3/revauth/internal/transport"
)

func fbConfig() config.Facebook {
	return config.Facebook{AppID: "appid-1"}
}

const fbProfileBody = `{"id":"123","name":"Ada Lovelace","email":"ada@example.com"}`

// graphErrBody builds a Graph API error payload.
func graphErrBody(code, subcode int) string {
	if subcode == 0 {
		return fmt.Sprintf(`{"error":{"code":%d,"type":"OAuthException","message":"token expired"}}`, code)
	}
	return fmt.Sprintf(`{"error":{"code":%d,"error_subcode":%d,"type":"OAuthException","message":"permission revoked"}}`, code, subcode)
}

func TestFacebook_Unconfigured_NoCollaboratorCalls(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{}
	a := NewFacebook(config.Facebook{}, store, client, &confirmDelegate{answer: true})

	creds, p := a.Run(context.Background())
	require.Nil(t, creds)
	require.NotNil(t, p)
	assert.Equal(t, ProblemUnconfigured, p.Kind)
	assert.Zero(t, store.accessCalls)
	assert.Zero(t, client.accountCalls)
}

func TestFacebook_AccessDenied(t *testing.T) {
	store := &fakeStore{accessErr: &accounts.StoreError{Code: accounts.CodePermissionDenied}}
	a := NewFacebook(fbConfig(), store, &fakeClient{}, &confirmDelegate{answer: true})

	_, p := a.Run(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, ProblemAccessNotGranted, p.Kind)
}

func TestFacebook_GrantedButEmpty_NoSystemAccount(t *testing.T) {
	store := &fakeStore{} // granted, zero handles
	a := NewFacebook(fbConfig(), store, &fakeClient{}, &confirmDelegate{answer: true})

	_, p := a.Run(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, ProblemNoSystemAccount, p.Kind)
}

func TestFacebook_UnknownStoreError(t *testing.T) {
	store := &fakeStore{accessErr: &accounts.StoreError{Code: 42, Detail: "keychain sadness"}}
	a := NewFacebook(fbConfig(), store, &fakeClient{}, &confirmDelegate{answer: true})

	_, p := a.Run(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, ProblemAccountStoreFailure, p.Kind)
	assert.Contains(t, p.Message, "keychain sadness")
}

func TestFacebook_ConfirmDeclined(t *testing.T) {
	store := &fakeStore{handles: []accounts.Handle{&fakeHandle{id: "ada@example.com", token: "tok"}}}
	a := NewFacebook(fbConfig(), store, &fakeClient{}, &confirmDelegate{answer: false})

	_, p := a.Run(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, ProblemUserCancelled, p.Kind)
}

func TestFacebook_NetworkFailureCarriesCode(t *testing.T) {
	store := &fakeStore{handles: []accounts.Handle{&fakeHandle{id: "ada", token: "tok"}}}
	client := &fakeClient{account: []roundTrip{fail(&transport.Error{Code: -1009, Message: "offline"})}}
	a := NewFacebook(fbConfig(), store, client, &confirmDelegate{answer: true})

	_, p := a.Run(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, ProblemNetworkFailure, p.Kind)
	assert.Equal(t, -1009, p.Code)
	assert.Equal(t, "offline", p.Message)
}

func TestFacebook_HappyPath(t *testing.T) {
	store := &fakeStore{handles: []accounts.Handle{&fakeHandle{id: "ada@example.com", token: "cached-token"}}}
	client := &fakeClient{account: []roundTrip{ok(fbProfileBody)}}
	del := &confirmDelegate{answer: true}
	a := NewFacebook(fbConfig(), store, client, del)

	creds, p := a.Run(context.Background())
	require.Nil(t, p)
	require.NotNil(t, creds)
	assert.Equal(t, "123", creds.ID)
	assert.Equal(t, "Ada Lovelace", creds.Name)
	assert.Equal(t, "ada@example.com", creds.Email)
	assert.Equal(t, "cached-token", creds.Token)
	assert.Equal(t, "https://graph.facebook.com/123/picture?type=large", creds.AvatarURL)
	assert.Equal(t, 1, del.asked)
	assert.Equal(t, "id,name,email", client.lastAccountParams.Get("fields"))
}

func TestFacebook_MissingRequiredField(t *testing.T) {
	store := &fakeStore{handles: []accounts.Handle{&fakeHandle{id: "ada", token: "tok"}}}
	client := &fakeClient{account: []roundTrip{ok(`{"id":"123"}`)}}
	a := NewFacebook(fbConfig(), store, client, &confirmDelegate{answer: true})

	_, p := a.Run(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, ProblemProviderFailure, p.Kind)
}

func TestFacebook_Renewal_OnceThenSuccess(t *testing.T) {
	store := &fakeStore{
		handles:      []accounts.Handle{&fakeHandle{id: "ada", token: "tok"}},
		renewOutcome: accounts.Renewed,
	}
	client := &fakeClient{account: []roundTrip{
		status(400, graphErrBody(190, 0)),
		ok(fbProfileBody),
	}}
	a := NewFacebook(fbConfig(), store, client, &confirmDelegate{answer: true})

	creds, p := a.Run(context.Background())
	require.Nil(t, p)
	require.NotNil(t, creds)
	assert.Equal(t, 1, store.renewCalls)
	assert.Equal(t, 2, client.accountCalls)
}

func TestFacebook_Renewal_SecondOAuthErrorNeedsReauth(t *testing.T) {
	store := &fakeStore{
		handles:      []accounts.Handle{&fakeHandle{id: "ada", token: "tok"}},
		renewOutcome: accounts.Renewed,
	}
	client := &fakeClient{account: []roundTrip{
		status(400, graphErrBody(190, 0)),
		status(400, graphErrBody(190, 0)),
	}}
	a := NewFacebook(fbConfig(), store, client, &confirmDelegate{answer: true})

	_, p := a.Run(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, ProblemAccountNeedsReauth, p.Kind)
	// Renewal is one-shot: the second 190 must not renew again.
	assert.Equal(t, 1, store.renewCalls)
}

func TestFacebook_RenewalFailure_NeedsReauth(t *testing.T) {
	store := &fakeStore{
		handles:      []accounts.Handle{&fakeHandle{id: "ada", token: "tok"}},
		renewOutcome: accounts.RenewRejected,
	}
	client := &fakeClient{account: []roundTrip{status(400, graphErrBody(190, 0))}}
	a := NewFacebook(fbConfig(), store, client, &confirmDelegate{answer: true})

	_, p := a.Run(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, ProblemAccountNeedsReauth, p.Kind)
	assert.Equal(t, 1, store.renewCalls)
	assert.Equal(t, 1, client.accountCalls)
}

// Sub-code 458 is a vendor-specific, empirically observed value; if Facebook
// ever renumbers it this test pins the policy, not the provider.
func TestFacebook_PermissionRevoked_RestartsOnce(t *testing.T) {
	store := &fakeStore{handles: []accounts.Handle{&fakeHandle{id: "ada", token: "tok"}}}
	client := &fakeClient{account: []roundTrip{
		status(400, graphErrBody(190, 458)),
		ok(fbProfileBody),
	}}
	a := NewFacebook(fbConfig(), store, client, &confirmDelegate{answer: true})

	creds, p := a.Run(context.Background())
	require.Nil(t, p)
	require.NotNil(t, creds)
	// Restart re-runs the access prompt.
	assert.Equal(t, 2, store.accessCalls)
	assert.Zero(t, store.renewCalls)
}

func TestFacebook_PermissionRevoked_SecondTimeFallsToRenewal(t *testing.T) {
	store := &fakeStore{
		handles:      []accounts.Handle{&fakeHandle{id: "ada", token: "tok"}},
		renewOutcome: accounts.Renewed,
	}
	client := &fakeClient{account: []roundTrip{
		status(400, graphErrBody(190, 458)),
		status(400, graphErrBody(190, 458)),
		ok(fbProfileBody),
	}}
	a := NewFacebook(fbConfig(), store, client, &confirmDelegate{answer: true})

	creds, p := a.Run(context.Background())
	require.Nil(t, p)
	require.NotNil(t, creds)
	assert.Equal(t, 2, store.accessCalls)
	assert.Equal(t, 1, store.renewCalls)
}

func TestFacebook_OtherGraphError_Opaque(t *testing.T) {
	store := &fakeStore{handles: []accounts.Handle{&fakeHandle{id: "ada", token: "tok"}}}
	client := &fakeClient{account: []roundTrip{status(400, graphErrBody(10, 0))}}
	a := NewFacebook(fbConfig(), store, client, &confirmDelegate{answer: true})

	_, p := a.Run(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, ProblemProviderFailure, p.Kind)
	assert.Zero(t, store.renewCalls)
}

func TestFacebook_SecondRunRejected(t *testing.T) {
	store := &fakeStore{handles: []accounts.Handle{&fakeHandle{id: "ada", token: "tok"}}}
	client := &fakeClient{account: []roundTrip{ok(fbProfileBody)}}
	a := NewFacebook(fbConfig(), store, client, &confirmDelegate{answer: true})

	_, p := a.Run(context.Background())
	require.Nil(t, p)

	accessBefore := store.accessCalls
	creds, p := a.Run(context.Background())
	require.Nil(t, creds)
	require.NotNil(t, p)
	assert.Equal(t, ProblemAlreadyRun, p.Kind)
	assert.Equal(t, accessBefore, store.accessCalls)
}
