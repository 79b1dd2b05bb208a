package changepassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	changepassword "postboard/internal/core/services/change_password"
	"postboard/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

const SuccessMessage = "Password changed"

type Handler struct {
	service services.Service[changepassword.Input, changepassword.Result]
}

func New(
	service services.Service[changepassword.Input, changepassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type Result struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.CurrentPassword, validation.Required, validation.Length(0, 512)),
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

	result, err := h.service.Run(
		r.Context(),
		changepassword.Input{
			CurrentPassword: user.RawPassword(input.CurrentPassword),
			NewPassword:     user.RawPassword(input.NewPassword),
		},
	)
	switch {
	case err == nil:
		response.Render(rw, Result{Message: SuccessMessage, Token: string(result.Token)}, http.StatusOK)
	case errors.Is(err, user.ErrInvalidSessionToken):
		response.RenderUnauthorized(rw)
	case errors.Is(err, user.ErrInvalidCredentials):
		response.RenderError(rw, "invalid current password", http.StatusBadRequest)
	case errors.Is(err, user.ErrInvalidPassword):
		response.RenderError(rw, "password must be between 8 and 256 characters", http.StatusBadRequest)
	default:
		response.RenderInternalError(rw)
	}
}
