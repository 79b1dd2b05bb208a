package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       uint16 `env:"PORT" envDefault:"8000"`
	Secret     string `env:"SECRET,required"`

	PostgresqlURL string   `env:"POSTGRESQL_URL,required"`
	RedisURL      string   `env:"REDIS_URL,required"`
	SentryDsn     *url.URL `env:"SENTRY_DSN"`

	RabbitmqURL                   string `env:"RABBITMQ_URL,required"`
	RabbitmqAccountEventsExchange string `env:"RABBITMQ_ACCOUNT_EVENTS_EXCHANGE" envDefault:"account-events"`
	RabbitmqPasswordChangedQueue  string `env:"RABBITMQ_PASSWORD_CHANGED_QUEUE" envDefault:"password-changed"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	BcryptHasherCost             int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	SessionTokenValidDuration    time.Duration `env:"SESSION_TOKEN_VALID_DURATION" envDefault:"168h"`
	PasswordResetCodeTTL         time.Duration `env:"PASSWORD_RESET_CODE_TTL" envDefault:"1h"`
	PasswordResetCodeSendTimeout time.Duration `env:"PASSWORD_RESET_CODE_SEND_TIMEOUT" envDefault:"10s"`

	AwsRegion                             string `env:"AWS_REGION" envDefault:"eu-central-1"`
	AwsAccessKey                          string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                          string `env:"AWS_SECRET_KEY"`
	AwsEmailSender                        string `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetCodeTemplate     string `env:"AWS_EMAIL_PASSWORD_RESET_CODE_TEMPLATE" envDefault:"password-reset-code"`
	AwsEmailPasswordChangedNoticeTemplate string `env:"AWS_EMAIL_PASSWORD_CHANGED_NOTICE_TEMPLATE" envDefault:"password-changed-notice"`

	GoogleRecaptchaSecretKey      string        `env:"GOOGLE_RECAPTCHA_SECRET_KEY"`
	GoogleRecaptchaScoreThreshold float64       `env:"GOOGLE_RECAPTCHA_SCORE_THRESHOLD" envDefault:"0.5"`
	GoogleRecaptchaRequestTimeout time.Duration `env:"GOOGLE_RECAPTCHA_REQUEST_TIMEOUT" envDefault:"5s"`
}

func Load() (*Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	config := &Config{}
	if err := env.Parse(config, opts); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.PasswordResetCodeTTL <= 0 {
		return fmt.Errorf("PASSWORD_RESET_CODE_TTL must be positive")
	}
	if c.PasswordResetCodeSendTimeout <= 0 {
		return fmt.Errorf("PASSWORD_RESET_CODE_SEND_TIMEOUT must be positive")
	}
	if c.SessionTokenValidDuration <= 0 {
		return fmt.Errorf("SESSION_TOKEN_VALID_DURATION must be positive")
	}
	if c.IsTestMode {
		return nil
	}
	if c.AwsEmailSender == "" {
		return fmt.Errorf("AWS_EMAIL_SENDER must be set")
	}
	if c.GoogleRecaptchaSecretKey == "" {
		return fmt.Errorf("GOOGLE_RECAPTCHA_SECRET_KEY must be set")
	}
	return nil
}
