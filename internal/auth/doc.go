// Package auth implements reverse-OAuth social login for Facebook and
// Twitter: starting from an account already registered in the device account
// store, a run negotiates a provider access token without prompting for
// credentials and returns it together with the verified profile.
//
// Each authenticator is single-use. Construct it with its consumer
// configuration, the account store, a signed-request client and a delegate,
// then call Run exactly once:
//
//	fb := auth.NewFacebook(cfg.Facebook, store, client, delegate)
//	creds, problem := fb.Run(ctx)
//
// Run returns exactly one of Credentials or Problem. Problems form a closed
// taxonomy (see ProblemKind); retries for expired Facebook tokens happen
// internally and are never surfaced as intermediate problems.
package auth
