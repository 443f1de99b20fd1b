package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "revauth.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_FileAndDefaults(t *testing.T) {
	p := writeFile(t, `
facebook:
  app_id: "fb-app"
twitter:
  consumer_key: "ck"
  consumer_secret: "cs"
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "fb-app", c.Facebook.AppID)
	assert.Equal(t, "ck", c.Twitter.ConsumerKey)
	assert.Equal(t, "cs", c.Twitter.ConsumerSecret)

	// defaults
	assert.Equal(t, "dev", c.App.Env)
	assert.Equal(t, "info", c.App.LogLevel)
	assert.Equal(t, AudienceOnlyMe, c.Facebook.Audience)
	assert.Equal(t, DefaultFacebookPermissions, c.Facebook.Permissions)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p := writeFile(t, `
facebook:
  app_id: "from-file"
`)
	t.Setenv("REVAUTH_FACEBOOK_APP_ID", "from-env")
	t.Setenv("REVAUTH_TWITTER_CONSUMER_KEY", "env-ck")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Facebook.AppID)
	assert.Equal(t, "env-ck", c.Twitter.ConsumerKey)
}

func TestLoad_MissingFileIsNotFatal(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, c.Facebook.AppID)
}

func TestLoad_BadYAML(t *testing.T) {
	p := writeFile(t, "facebook: [not a map")
	_, err := Load(p)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.Error(t, Facebook{}.Validate())
	assert.NoError(t, Facebook{AppID: "x"}.Validate())

	assert.Error(t, Twitter{ConsumerKey: "k"}.Validate())
	assert.Error(t, Twitter{ConsumerSecret: "s"}.Validate())
	assert.NoError(t, Twitter{ConsumerKey: "k", ConsumerSecret: "s"}.Validate())
}
