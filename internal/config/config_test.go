package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthConfigValidate(t *testing.T) {
	valid := AuthConfig{SigningKey: "k", Pepper: "p"}
	assert.NoError(t, valid.Validate())

	cases := map[string]AuthConfig{
		"missing signing key": {Pepper: "p"},
		"missing pepper":      {SigningKey: "k"},
		"placeholder signing key": {
			SigningKey: "your_super_secret_jwt_key_please_change_this!",
			Pepper:     "p",
		},
		"placeholder pepper": {
			SigningKey: "k",
			Pepper:     "a_strong_random_pepper_string_CHANGE_THIS_IN_PRODUCTION!",
		},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestTokenTTL(t *testing.T) {
	assert.Equal(t, 30*time.Minute, AuthConfig{TokenTTLMinutes: 30}.TokenTTL())
	assert.Equal(t, time.Hour, AuthConfig{}.TokenTTL())
	assert.Equal(t, time.Hour, AuthConfig{TokenTTLMinutes: -5}.TokenTTL())
}

func TestAppConfigAddr(t *testing.T) {
	cfg := AppConfig{Host: "127.0.0.1", Port: "8080"}
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, 15*time.Second, AppConfig{RequestTimeoutSeconds: 15}.RequestTimeout())
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	t.Setenv("AUTH_SIGNING_KEY", "")
	t.Setenv("AUTH_PEPPER", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadWithSecrets(t *testing.T) {
	t.Setenv("AUTH_SIGNING_KEY", "test-key")
	t.Setenv("AUTH_PEPPER", "test-pepper")
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "90")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, "taskboard", cfg.App.Name)
}
