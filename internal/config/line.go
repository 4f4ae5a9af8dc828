package config

import "github.com/pkg/errors"

const (
	accessTokenKey   = "LINE_CHANNEL_ACCESS_TOKEN"
	signingSecretKey = "LINE_CHANNEL_SECRET"
)

type LineConfig struct {
	accessToken   string
	signingSecret string
}

func (l *LineConfig) loadEnv() {
	l.accessToken = getEnv(accessTokenKey, "")
	l.signingSecret = getEnv(signingSecretKey, "")
}

func (l *LineConfig) validate() error {
	if l.accessToken == "" {
		return errors.Errorf("%s is not set", accessTokenKey)
	}
	if l.signingSecret == "" {
		return errors.Errorf("%s is not set", signingSecretKey)
	}
	return nil
}

func (l *LineConfig) Token() string {
	return l.accessToken
}

func (l *LineConfig) Secret() string {
	return l.signingSecret
}
