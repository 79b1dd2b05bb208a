package main

import (
	"context"
	"fmt"
	"os"
	"postboard/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const usage = `usage:
  aws create-templates
  aws delete-templates
  aws send <to> <template> <json params>`

const (
	passwordResetCodeSubject = "Your password reset code"
	passwordResetCodeHtml    = `<p>Your password reset code is <b>{{code}}</b>.</p>` +
		`<p>It expires in {{expiresInMinutes}} minutes. If you did not ask for it, ignore this email.</p>`
	passwordResetCodeText = "Your password reset code is {{code}}. " +
		"It expires in {{expiresInMinutes}} minutes. If you did not ask for it, ignore this email."

	passwordChangedNoticeSubject = "Your password has been changed"
	passwordChangedNoticeHtml    = `<p>Hi {{username}},</p>` +
		`<p>the password of your account was changed at {{changedAt}}.</p>` +
		`<p>If it was not you, reset your password right away.</p>`
	passwordChangedNoticeText = "Hi {{username}}, the password of your account was changed at {{changedAt}}. " +
		"If it was not you, reset your password right away."
)

func main() {
	if len(os.Args) < 2 {
		exit(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		exit(err)
	}
	svc := newSESClient(cfg)

	switch os.Args[1] {
	case "create-templates":
		CreateEmailTemplate(
			svc,
			cfg.AwsEmailPasswordResetCodeTemplate,
			passwordResetCodeSubject,
			passwordResetCodeHtml,
			passwordResetCodeText,
		)
		CreateEmailTemplate(
			svc,
			cfg.AwsEmailPasswordChangedNoticeTemplate,
			passwordChangedNoticeSubject,
			passwordChangedNoticeHtml,
			passwordChangedNoticeText,
		)
	case "delete-templates":
		DeleteEmailTemplate(svc, cfg.AwsEmailPasswordResetCodeTemplate)
		DeleteEmailTemplate(svc, cfg.AwsEmailPasswordChangedNoticeTemplate)
	case "send":
		if len(os.Args) != 5 {
			exit(usage)
		}
		SendEmailTemplate(svc, cfg.AwsEmailSender, os.Args[2], os.Args[3], os.Args[4])
	default:
		exit(usage)
	}
}

func exit(msg any) {
	fmt.Fprintf(os.Stderr, "error: %v\n", msg)
	os.Exit(1)
}

func newSESClient(cfg *config.Config) *ses.Client {
	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	if err != nil {
		exit(err)
	}
	return ses.NewFromConfig(awsCfg)
}

func CreateEmailTemplate(
	svc *ses.Client,
	name string,
	subject string,
	htmlPart string,
	textPart string,
) {
	input := &ses.CreateTemplateInput{
		Template: &types.Template{
			SubjectPart:  &subject,
			HtmlPart:     &htmlPart,
			TextPart:     &textPart,
			TemplateName: &name,
		},
	}
	result, err := svc.CreateTemplate(context.Background(), input)
	if err != nil {
		exit(err)
	}

	fmt.Println("Template created:", name)
	fmt.Println(result)
}

func DeleteEmailTemplate(svc *ses.Client, name string) {
	result, err := svc.DeleteTemplate(
		context.Background(),
		&ses.DeleteTemplateInput{
			TemplateName: &name,
		},
	)
	if err != nil {
		exit(err)
	}

	fmt.Println("Template deleted:", name)
	fmt.Println(result)
}

// SendEmailTemplate sends a templated email. sender must be verified with SES.
func SendEmailTemplate(svc *ses.Client, sender string, to string, name string, args string) {
	result, err := svc.SendTemplatedEmail(
		context.Background(),
		&ses.SendTemplatedEmailInput{
			Source: aws.String(sender),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{to},
			},
			Template:     &name,
			TemplateData: &args,
		},
	)
	if err != nil {
		exit(err)
	}

	fmt.Println("Success:")
	fmt.Println(result)
}
