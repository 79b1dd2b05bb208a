package resetpassword

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
	resetpassword "postboard/internal/core/services/reset_password"
	"postboard/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	SuccessMessage     = "Password reset successful"
	InvalidCodeMessage = "invalid or expired reset code"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
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
		validation.Field(&i.Token, validation.Required, validation.Length(0, 64)),
		validation.Field(
			&i.NewPassword,
			validation.Required,
			validation.RuneLength(user.MinPasswordLength, user.MaxPasswordLength),
		),
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

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Email:       c.NewEmail(input.Email),
			Code:        user.PasswordResetCode(input.Token),
			NewPassword: user.RawPassword(input.NewPassword),
		},
	)
	switch {
	case err == nil:
		response.RenderMessage(rw, SuccessMessage, http.StatusOK)
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		response.RenderRateLimitExceeded(rw)
	case errors.Is(err, user.ErrInvalidPasswordResetCode):
		response.RenderError(rw, InvalidCodeMessage, http.StatusBadRequest)
	case errors.Is(err, user.ErrInvalidPassword):
		response.Render(
			rw,
			validation.Errors{"newPassword": errors.New("the length must be between 8 and 256")},
			http.StatusBadRequest,
		)
	default:
		response.RenderInternalError(rw)
	}
}
