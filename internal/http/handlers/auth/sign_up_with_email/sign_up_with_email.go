package signupwithemail

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	c "postboard/internal/core/domain/common"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	"postboard/internal/core/services/captcha"
	signupwithemail "postboard/internal/core/services/sign_up_with_email"
	"postboard/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

type Handler struct {
	service services.Service[signupwithemail.Input, signupwithemail.Result]
}

func New(
	service services.Service[signupwithemail.Input, signupwithemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
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
		validation.Field(&i.Username, validation.Required, validation.Length(3, 64), validation.Match(usernamePattern)),
		validation.Field(
			&i.Password,
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
		signupwithemail.Input{
			Email:    c.NewEmail(input.Email),
			Username: user.Username(input.Username),
			Password: user.RawPassword(input.Password),
		},
	)
	switch {
	case err == nil:
		response.Render(rw, response.NewUserWithToken(result.User, result.Token), http.StatusCreated)
	case errors.Is(err, captcha.ErrInvalidCaptcha):
		response.RenderInvalidCaptcha(rw)
	case errors.Is(err, user.ErrEmailAlreadyExists), errors.Is(err, user.ErrUsernameAlreadyExists):
		response.RenderError(rw, "email or username already exists", http.StatusUnprocessableEntity)
	case errors.Is(err, user.ErrInvalidPassword):
		response.RenderError(rw, "password must be between 8 and 256 characters", http.StatusBadRequest)
	default:
		response.RenderInternalError(rw)
	}
}
