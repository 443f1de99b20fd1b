package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dropDatabas3/revauth/internal/accounts"
)

// envStore is a minimal account store backed by environment variables, so
// the flows can be exercised from a terminal where no device store exists:
//
//	REVAUTH_FB_ACCOUNT / REVAUTH_FB_TOKEN
//	REVAUTH_TW_ACCOUNT / REVAUTH_TW_TOKEN / REVAUTH_TW_TOKEN_SECRET
type envStore struct{}

type envHandle struct {
	id     string
	token  string
	secret string
}

func (h *envHandle) Identifier() string { return h.id }

func (h *envHandle) Token() (string, bool) {
	return h.token, h.token != ""
}

func (h *envHandle) TokenPair() (string, string, bool) {
	return h.token, h.secret, h.token != "" && h.secret != ""
}

func (s *envStore) RequestAccess(ctx context.Context, p accounts.Provider, opts accounts.AccessOptions) error {
	if len(s.List(p)) == 0 {
		return &accounts.StoreError{Code: accounts.CodeNoAccount}
	}
	return nil
}

func (s *envStore) List(p accounts.Provider) []accounts.Handle {
	switch p {
	case accounts.ProviderFacebook:
		if id := os.Getenv("REVAUTH_FB_ACCOUNT"); id != "" {
			return []accounts.Handle{&envHandle{id: id, token: os.Getenv("REVAUTH_FB_TOKEN")}}
		}
	case accounts.ProviderTwitter:
		if id := os.Getenv("REVAUTH_TW_ACCOUNT"); id != "" {
			return []accounts.Handle{&envHandle{
				id:     id,
				token:  os.Getenv("REVAUTH_TW_TOKEN"),
				secret: os.Getenv("REVAUTH_TW_TOKEN_SECRET"),
			}}
		}
	}
	return nil
}

func (s *envStore) Renew(ctx context.Context, h accounts.Handle) (accounts.RenewOutcome, error) {
	return accounts.RenewFailed, fmt.Errorf("env store cannot renew credentials; refresh the token variables")
}

// terminalDelegate answers the confirmation/selection prompts on stdin.
// With autoConfirm set it accepts the first option without prompting.
type terminalDelegate struct {
	autoConfirm bool
}

func (d *terminalDelegate) ConfirmAccount(ctx context.Context, identifier string) (bool, error) {
	if d.autoConfirm {
		return true, nil
	}
	fmt.Printf("Use account %q? [y/N]: ", identifier)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (d *terminalDelegate) SelectAccount(ctx context.Context, identifiers []string) (string, error) {
	if d.autoConfirm && len(identifiers) > 0 {
		return identifiers[0], nil
	}
	for i, id := range identifiers {
		fmt.Printf("  [%d] %s\n", i+1, id)
	}
	fmt.Print("Select account (empty to cancel): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	choice := strings.TrimSpace(line)
	if choice == "" {
		return "", nil
	}
	for i, id := range identifiers {
		if choice == fmt.Sprintf("%d", i+1) || choice == id {
			return id, nil
		}
	}
	return choice, nil
}
