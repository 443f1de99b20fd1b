package auth

// Credentials is the verified identity a successful run hands back.
// Immutable; built exactly once at the end of a run.
//
// Facebook fills ID, Name, Token, Email (optional) and AvatarURL.
// Twitter additionally fills ScreenName and TokenSecret.
type Credentials struct {
	ID         string
	Name       string
	ScreenName string

	Token       string
	TokenSecret string

	Email     string
	AvatarURL string
}
