package email

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/shutterfest/notify/internal/config"
	"github.com/shutterfest/notify/internal/pkg/logger"
)

// SESTransport sends emails via AWS SES using the SDK v2.
type SESTransport struct {
	region string
	client *sesv2.Client
}

// NewSESTransport creates an SES transport from config. Returns an error if
// the AWS config cannot be assembled.
func NewSESTransport(cfg config.SESConfig) (*SESTransport, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("ses: access and secret keys are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("ses: load aws config: %w", err)
	}

	return &SESTransport{
		region: cfg.Region,
		client: sesv2.NewFromConfig(awsCfg),
	}, nil
}

func (t *SESTransport) Name() string { return "ses" }

// Send delivers a single email through AWS SES.
func (t *SESTransport) Send(ctx context.Context, msg *OutboundMessage) (*SendResult, error) {
	if t.client == nil {
		return nil, fmt.Errorf("ses: client not initialized")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(formatFrom(msg.FromName, msg.FromEmail)),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if msg.Text != "" {
		input.Content.Simple.Body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}

	result, err := t.client.SendEmail(ctx, input)
	if err != nil {
		logger.Warn("ses send failed", "recipient", msg.To, "error", err.Error())
		return &SendResult{Success: false, Error: err, Transport: "ses"}, nil
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}

	logger.Debug("ses sent", "recipient", msg.To, "message_id", messageID)

	return &SendResult{
		Success:   true,
		MessageID: messageID,
		Transport: "ses",
		SentAt:    time.Now(),
	}, nil
}

func formatFrom(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
