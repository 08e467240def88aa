package notifier

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/order"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

var (
	ErrSenderNotConfigured = errors.New("sender email address is not configured")
	ErrNoRecipient         = errors.New("recipient email address is empty")
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Settings struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SenderEmail     string
	SiteName        string
}

// EmailNotifier sends order confirmations through Amazon SES.
type EmailNotifier struct {
	client   sesAPI
	sender   string
	siteName string
}

// NewEmailNotifier uses static credentials when an access key is given and
// the default AWS credential chain otherwise.
func NewEmailNotifier(ctx context.Context, s Settings) (*EmailNotifier, error) {
	if s.SenderEmail == "" {
		return nil, ErrSenderNotConfigured
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(s.Region)}
	if s.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKeyID, s.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return newEmailNotifier(ses.NewFromConfig(awsCfg), s), nil
}

func newEmailNotifier(client sesAPI, s Settings) *EmailNotifier {
	site := s.SiteName
	if site == "" {
		site = "Company Name"
	}
	return &EmailNotifier{client: client, sender: s.SenderEmail, siteName: site}
}

func (n *EmailNotifier) SendOrderConfirmation(ctx context.Context, o order.Order) error {
	if o.Email == "" {
		return ErrNoRecipient
	}

	log := logger.FromCtx(ctx).With(
		zap.String("order_number", o.OrderNumber),
		zap.String("recipient", o.Email),
	)

	subject, text, htmlBody := buildConfirmation(n.siteName, o)

	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.sender),
		Destination: &types.Destination{
			ToAddresses: []string{o.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(htmlBody)},
				Text: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(text)},
			},
		},
	})
	if err != nil {
		log.Error("failed to send order confirmation", zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info("order confirmation sent")
	return nil
}

func buildConfirmation(site string, o order.Order) (subject, text, htmlBody string) {
	subject = fmt.Sprintf("Order %s Confirmation - Thank You for Your Purchase!", o.OrderNumber)

	var lines, items strings.Builder
	for _, it := range o.Items {
		fmt.Fprintf(&lines, "- %s x %d @ %s\n", it.Name, it.Quantity, it.Price.StringFixed(2))
		fmt.Fprintf(&items, "<li>%s x %d @ %s</li>",
			html.EscapeString(it.Name), it.Quantity, it.Price.StringFixed(2))
	}
	total := o.TotalAmount.StringFixed(2)

	text = fmt.Sprintf(
		"Dear %s,\n\nThank you for your order! Your order %s has been successfully placed.\n\n"+
			"Items:\n%s\nTotal Amount: %s\n\nBest regards,\n%s",
		o.CustomerName, o.OrderNumber, lines.String(), total, site,
	)

	htmlBody = fmt.Sprintf(`<html>
<body>
<p>Dear %s,</p>
<p>Thank you for your order! Your order %s has been successfully placed.</p>
<ul>%s</ul>
<p><strong>Total Amount: %s</strong></p>
<p>Best regards,<br>%s</p>
</body>
</html>`,
		html.EscapeString(o.CustomerName), o.OrderNumber, items.String(), total, html.EscapeString(site),
	)

	return subject, text, htmlBody
}
