package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFacebookPermissions is the permission set requested from the account
// store when the caller supplies none.
var DefaultFacebookPermissions = []string{
	"public_profile",
	"email",
	"user_birthday",
	"user_location",
	"user_friends",
}

// Audience is the Facebook audience for content later posted with the token.
type Audience string

const (
	AudienceEveryone Audience = "everyone"
	AudienceFriends  Audience = "friends"
	AudienceOnlyMe   Audience = "only_me"
)

// Facebook holds the app's Facebook consumer identity.
type Facebook struct {
	AppID       string   `yaml:"app_id"`
	Permissions []string `yaml:"permissions"`
	Audience    Audience `yaml:"audience"`
}

// Twitter holds the app's Twitter consumer identity.
type Twitter struct {
	ConsumerKey    string `yaml:"consumer_key"`
	ConsumerSecret string `yaml:"consumer_secret"`
}

type Config struct {
	App struct {
		// dev | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Facebook Facebook `yaml:"facebook"`
	Twitter  Twitter  `yaml:"twitter"`
}

// Load reads a YAML config file and applies environment overrides and
// defaults. A missing file is not an error when every required value comes
// from the environment; pass "" to skip the file entirely.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	c.applyEnv()

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if len(c.Facebook.Permissions) == 0 {
		c.Facebook.Permissions = append([]string(nil), DefaultFacebookPermissions...)
	}
	if c.Facebook.Audience == "" {
		c.Facebook.Audience = AudienceOnlyMe
	}

	return &c, nil
}

// applyEnv lets the environment override file values: REVAUTH_* wins over YAML.
func (c *Config) applyEnv() {
	setIfEnv(&c.App.Env, "REVAUTH_APP_ENV")
	setIfEnv(&c.App.LogLevel, "REVAUTH_LOG_LEVEL")
	setIfEnv(&c.Facebook.AppID, "REVAUTH_FACEBOOK_APP_ID")
	setIfEnv(&c.Twitter.ConsumerKey, "REVAUTH_TWITTER_CONSUMER_KEY")
	setIfEnv(&c.Twitter.ConsumerSecret, "REVAUTH_TWITTER_CONSUMER_SECRET")
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate reports whether the Facebook consumer identity is usable.
func (f Facebook) Validate() error {
	if f.AppID == "" {
		return fmt.Errorf("facebook: app_id is required")
	}
	return nil
}

// Validate reports whether the Twitter consumer identity is usable.
func (t Twitter) Validate() error {
	if t.ConsumerKey == "" || t.ConsumerSecret == "" {
		return fmt.Errorf("twitter: consumer_key and consumer_secret are required")
	}
	return nil
}
