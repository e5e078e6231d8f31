package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	appconfig "github.com/wolfman30/clinic-proposal/internal/config"
	"github.com/wolfman30/clinic-proposal/internal/notify"
	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

// AWSConfigLoader loads the AWS SDK configuration on demand.
type AWSConfigLoader func(ctx context.Context) (aws.Config, error)

// BuildEmailSender picks the provider named by EMAIL_PROVIDER. "none" and
// unconfigured providers fall back to the logging stub.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, newSES func(aws.Config) notify.EmailSender, logger *logging.Logger) (notify.EmailSender, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender == nil {
			logger.Warn("sendgrid selected without SENDGRID_API_KEY; using stub sender")
			return notify.NewStubEmailSender(logger), nil
		}
		return sender, nil
	case "ses":
		if cfg.SESFromEmail == "" {
			logger.Warn("ses selected without SES_FROM_EMAIL; using stub sender")
			return notify.NewStubEmailSender(logger), nil
		}
		if loadAWS == nil || newSES == nil {
			return nil, fmt.Errorf("bootstrap: ses requires an AWS loader")
		}
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		return newSES(awsCfg), nil
	case "", "none", "stub":
		return notify.NewStubEmailSender(logger), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown email provider %q", cfg.EmailProvider)
	}
}
