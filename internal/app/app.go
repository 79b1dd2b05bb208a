package app

import (
	"fmt"
	"net/http"
	"postboard/internal/app/deps"
	"postboard/internal/app/services"
	"postboard/internal/http/handlers/auth"
	changepassword "postboard/internal/http/handlers/auth/change_password"
	forgotpassword "postboard/internal/http/handlers/auth/forgot_password"
	loginwithemail "postboard/internal/http/handlers/auth/log_in_with_email"
	"postboard/internal/http/handlers/auth/me"
	resetpassword "postboard/internal/http/handlers/auth/reset_password"
	signupwithemail "postboard/internal/http/handlers/auth/sign_up_with_email"
	verifyresetcode "postboard/internal/http/handlers/auth/verify_reset_code"
	"postboard/internal/http/handlers/captcha"
	"postboard/internal/http/handlers/user/events"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	authRouter := chi.NewRouter()
	authRouter.Use(auth.SetAuthTokenToContext)
	authRouter.Method(http.MethodPost, "/register", signupwithemail.New(s.SignUpWithEmail))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(
		http.MethodPost,
		"/forgot-password",
		forgotpassword.New(s.SendPasswordResetCode, deps.PasswordResetCodeLookup),
	)
	authRouter.Method(http.MethodPost, "/verify-reset-code", verifyresetcode.New(s.VerifyPasswordResetCode))
	authRouter.Method(http.MethodPost, "/reset-password", resetpassword.New(s.ResetPassword))
	authRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	authRouter.Method(http.MethodPut, "/password", changepassword.New(s.ChangePassword))
	authRouter.Method(
		http.MethodGet,
		"/events",
		events.New(deps.Logger, deps.SseServer, s.GetUserBySessionToken),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{forgotpassword.TestPasswordResetHeader},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Use(captcha.SetCaptchaTokenToContext)
	router.Mount("/api/auth", authRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
