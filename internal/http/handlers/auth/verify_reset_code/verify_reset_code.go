package verifyresetcode

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
	verifypasswordresetcode "postboard/internal/core/services/verify_password_reset_code"
	"postboard/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const InvalidCodeMessage = "invalid or expired reset code"

type Handler struct {
	service services.Service[verifypasswordresetcode.Input, verifypasswordresetcode.Result]
}

func New(
	service services.Service[verifypasswordresetcode.Input, verifypasswordresetcode.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type Result struct {
	Valid bool `json:"valid"`
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
		verifypasswordresetcode.Input{
			Email: c.NewEmail(input.Email),
			Code:  user.PasswordResetCode(input.Token),
		},
	)
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		response.RenderRateLimitExceeded(rw)
		return
	}
	if errors.Is(err, user.ErrInvalidPasswordResetCode) {
		response.RenderError(rw, InvalidCodeMessage, http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, Result{Valid: true}, http.StatusOK)
}
