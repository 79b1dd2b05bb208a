package services

import (
	"postboard/internal/app/deps"
	drl "postboard/internal/core/domain/rate_limiter"
	"postboard/internal/core/services"
	"postboard/internal/core/services/auth"
	"postboard/internal/core/services/captcha"
	changepassword "postboard/internal/core/services/change_password"
	getuserbysessiontoken "postboard/internal/core/services/get_user_by_session_token"
	loginwithemail "postboard/internal/core/services/log_in_with_email"
	notifypasswordchanged "postboard/internal/core/services/notify_password_changed"
	passwordchangedevent "postboard/internal/core/services/password_changed_event"
	ratelimiting "postboard/internal/core/services/rate_limiting"
	resetpassword "postboard/internal/core/services/reset_password"
	sendpasswordresetcode "postboard/internal/core/services/send_password_reset_code"
	signupwithemail "postboard/internal/core/services/sign_up_with_email"
	verifypasswordresetcode "postboard/internal/core/services/verify_password_reset_code"
)

type Services struct {
	SignUpWithEmail       services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail        services.Service[loginwithemail.Input, loginwithemail.Result]
	GetUserBySessionToken services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	ChangePassword        services.Service[changepassword.Input, changepassword.Result]

	SendPasswordResetCode   services.Service[sendpasswordresetcode.Input, sendpasswordresetcode.Result]
	VerifyPasswordResetCode services.Service[verifypasswordresetcode.Input, verifypasswordresetcode.Result]
	ResetPassword           services.Service[resetpassword.Input, resetpassword.Result]

	NotifyPasswordChanged services.Service[notifypasswordchanged.Input, notifypasswordchanged.Result]
}

// Verification and reset share one attempt budget per email.
var passwordResetCodeAttemptLimit = drl.Limit{Interval: drl.Minute, Value: 5}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = captcha.WithCaptcha(
		deps.Logger,
		deps.CaptchaValidator,
		signupwithemail.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordHasher,
			deps.SessionIssuer,
			deps.Now,
		),
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.SessionIssuer,
		),
	)
	s.GetUserBySessionToken = auth.WithAuthentication(
		deps.SessionIssuer,
		deps.UserRepository,
		getuserbysessiontoken.New(),
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.SessionIssuer,
		deps.UserRepository,
		passwordchangedevent.WithPasswordChangedEvent(
			deps.Logger,
			deps.EventPublisher,
			deps.Now,
			changepassword.New(
				deps.Logger,
				deps.UserRepository,
				deps.PasswordHasher,
				deps.SessionIssuer,
				deps.Now,
			),
		),
	)

	s.SendPasswordResetCode = captcha.WithCaptcha(
		deps.Logger,
		deps.CaptchaValidator,
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: 3},
			sendpasswordresetcode.New(
				deps.Logger,
				deps.UnitOfWork,
				deps.PasswordResetCodeGenerator,
				deps.PasswordResetCodeDigester,
				deps.PasswordResetCodeSender,
				deps.Config.PasswordResetCodeTTL,
				deps.Config.PasswordResetCodeSendTimeout,
				deps.Now,
			),
		),
	)
	s.VerifyPasswordResetCode = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		passwordResetCodeAttemptLimit,
		verifypasswordresetcode.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetCodeDigester,
			deps.Now,
		),
	)
	s.ResetPassword = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		passwordResetCodeAttemptLimit,
		passwordchangedevent.WithPasswordChangedEvent(
			deps.Logger,
			deps.EventPublisher,
			deps.Now,
			resetpassword.New(
				deps.Logger,
				deps.UnitOfWork,
				deps.PasswordResetCodeDigester,
				deps.PasswordHasher,
				deps.Now,
			),
		),
	)

	s.NotifyPasswordChanged = notifypasswordchanged.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordChangedNoticeSender,
	)

	return s
}
