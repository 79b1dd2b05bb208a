package recaptcha

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/services/captcha"
	"strings"
	"time"
)

const RECAPTCHA_VERIFICATION_URL = "https://www.google.com/recaptcha/api/siteverify"

type VerificationResult struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

func (r *VerificationResult) FromJSON(reader io.Reader) error {
	decoder := json.NewDecoder(reader)
	return decoder.Decode(r)
}

// GoogleRecaptchaValidator checks reCAPTCHA v3 tokens. Tokens are rejected
// when the score is below the threshold. If Google cannot be reached the
// token is accepted, rate limits still apply.
type GoogleRecaptchaValidator struct {
	log             logging.Logger
	httpClient      http.Client
	scoreThreshold  float64
	secretKey       string
	verificationURL string
}

func New(
	log logging.Logger,
	secretKey string,
	scoreThreshold float64,
	timeout time.Duration,
) *GoogleRecaptchaValidator {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &GoogleRecaptchaValidator{
		log:             log,
		scoreThreshold:  scoreThreshold,
		secretKey:       secretKey,
		httpClient:      http.Client{Timeout: timeout},
		verificationURL: RECAPTCHA_VERIFICATION_URL,
	}
}

func (v *GoogleRecaptchaValidator) ValidateCaptchaToken(ctx context.Context, token captcha.CaptchaToken) bool {
	if token.IsZero() {
		v.log.Info(ctx, "Recaptcha token is not provided, skip verification.")
		return false
	}

	requestBody := url.Values{}
	requestBody.Add("secret", v.secretKey)
	requestBody.Add("response", string(token))

	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		v.verificationURL,
		strings.NewReader(requestBody.Encode()),
	)
	if err != nil {
		logging.Error(ctx, v.log, err)
		return true
	}

	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response, err := v.httpClient.Do(request)
	if err != nil {
		logging.Error(ctx, v.log, err)
		return true
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		v.log.Warning(ctx, "Recaptcha verification failed.", logging.Entry("status", response.StatusCode))
		return true
	}

	result := VerificationResult{}
	if err := result.FromJSON(response.Body); err != nil {
		logging.Error(ctx, v.log, err)
		return true
	}
	v.log.Info(
		ctx,
		"Recaptcha token has been validated.",
		logging.Entry("result", result),
	)
	return result.Success && result.Score >= v.scoreThreshold
}
