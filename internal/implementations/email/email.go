package email

import (
	"context"
	"encoding/json"
	"math"
	"postboard/internal/core/domain/user"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/golang-module/carbon/v2"
)

const PasswordChangedAtLayout = "2006-01-02 15:04 MST"

type sesClient interface {
	SendTemplatedEmail(
		ctx context.Context,
		params *ses.SendTemplatedEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendTemplatedEmailOutput, error)
}

type EmailSender struct {
	ses sesClient
	// This address must be verified with Amazon SES.
	sender                        string
	passwordResetCodeTemplate     string
	passwordResetCodeTTL          time.Duration
	passwordChangedNoticeTemplate string
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	passwordResetCodeTemplate string,
	passwordResetCodeTTL time.Duration,
	passwordChangedNoticeTemplate string,
) *EmailSender {
	return &EmailSender{
		ses:                           ses.NewFromConfig(awsConfig),
		sender:                        sender,
		passwordResetCodeTemplate:     passwordResetCodeTemplate,
		passwordResetCodeTTL:          passwordResetCodeTTL,
		passwordChangedNoticeTemplate: passwordChangedNoticeTemplate,
	}
}

func (s *EmailSender) SendPasswordResetCode(ctx context.Context, u user.User, code user.PasswordResetCode) error {
	return s.send(ctx, u, s.passwordResetCodeTemplate, passwordResetCodeTemplateParams{
		Code:             string(code),
		ExpiresInMinutes: int(math.Round(s.passwordResetCodeTTL.Minutes())),
	})
}

func (s *EmailSender) SendPasswordChangedNotice(ctx context.Context, u user.User, at time.Time) error {
	return s.send(ctx, u, s.passwordChangedNoticeTemplate, passwordChangedNoticeTemplateParams{
		Username:  string(u.Username),
		ChangedAt: FormatPasswordChangedAt(at),
	})
}

func (s *EmailSender) send(ctx context.Context, u user.User, template string, params any) error {
	templateParamsBytes, err := json.Marshal(params)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{string(u.Email)},
			},
			Template:     &template,
			TemplateData: &templateParams,
		},
	)
	return err
}

func FormatPasswordChangedAt(at time.Time) string {
	return carbon.Time2Carbon(at).SetTimezone(carbon.UTC).Layout(PasswordChangedAtLayout)
}

type passwordResetCodeTemplateParams struct {
	Code             string `json:"code"`
	ExpiresInMinutes int    `json:"expiresInMinutes"`
}

type passwordChangedNoticeTemplateParams struct {
	Username  string `json:"username"`
	ChangedAt string `json:"changedAt"`
}
