package forgotpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "postboard/internal/core/domain/common"
	e "postboard/internal/core/domain/errors"
	ratelimiter "postboard/internal/core/domain/rate_limiter"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"postboard/internal/core/services/captcha"
	sendpasswordresetcode "postboard/internal/core/services/send_password_reset_code"
	"postboard/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	SuccessMessage          = "If that email exists, a reset code has been sent."
	TestPasswordResetHeader = "x-test-password-reset-code"
)

// PasswordResetCodeLookup exposes the last issued code. It is only wired in
// test mode.
type PasswordResetCodeLookup interface {
	LastPasswordResetCode(email c.Email) (user.PasswordResetCode, bool)
}

type Handler struct {
	service    services.Service[sendpasswordresetcode.Input, sendpasswordresetcode.Result]
	codeLookup PasswordResetCodeLookup
}

// New builds the handler. codeLookup may be nil.
func New(
	service services.Service[sendpasswordresetcode.Input, sendpasswordresetcode.Result],
	codeLookup PasswordResetCodeLookup,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, codeLookup: codeLookup}
}

type Input struct {
	Email string `json:"email"`
}

// FromJSON decodes the body and normalizes the email, validation runs on the
// normalized value.
func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	if err := e.Decode(i); err != nil {
		return err
	}
	i.Email = string(c.NewEmail(i.Email))
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequest(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	email := c.NewEmail(input.Email)
	_, err := h.service.Run(r.Context(), sendpasswordresetcode.Input{Email: email})
	switch {
	case err == nil:
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		response.RenderRateLimitExceeded(rw)
		return
	case errors.Is(err, captcha.ErrInvalidCaptcha):
		response.RenderInvalidCaptcha(rw)
		return
	case errors.Is(err, user.ErrPasswordResetCodeNotSent):
		response.RenderError(rw, "could not send reset code", http.StatusInternalServerError)
		return
	default:
		response.RenderInternalError(rw)
		return
	}

	// In test mode the header is sent for unknown emails too, empty, so that
	// its presence does not tell accounts apart.
	if h.codeLookup != nil {
		code, _ := h.codeLookup.LastPasswordResetCode(email)
		rw.Header().Set(TestPasswordResetHeader, string(code))
	}
	response.RenderMessage(rw, SuccessMessage, http.StatusOK)
}
