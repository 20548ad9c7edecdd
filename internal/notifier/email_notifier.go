package notifier

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	config "github.com/Keoroanthony/go-food-ordering/configs"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type EmailNotifier struct {
	client sesAPI
	sender string
}

func NewEmailNotifier(ctx context.Context, cfg config.EmailConfig) (*EmailNotifier, error) {
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("sender email address is not configured in environment variables")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return &EmailNotifier{client: ses.NewFromConfig(awsCfg), sender: cfg.SenderEmail}, nil
}

func (n *EmailNotifier) OrderPlaced(ctx context.Context, to Recipient, order models.Order) error {
	subject := fmt.Sprintf("Order #%d Confirmation - Thank You for Your Order!", order.ID)
	total := order.TotalPrice.StringFixed(2)

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Thank you for your order! Your order #%d has been successfully placed.</p>
            <p><strong>Order Details:</strong></p>
            <ul>
                <li>Order ID: %d</li>
                <li>Items: %d</li>
                <li>Total Amount: $%s</li>
                <li>Payment: %s</li>
            </ul>
            <p>We'll let you know as soon as the kitchen starts preparing it.</p>
        </body>
        </html>`, html.EscapeString(to.Name), order.ID, order.ID, len(order.Items), total, order.PaymentMethod)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nThank you for your order! Your order #%d has been successfully placed.\n\n"+
			"Order Details:\nOrder ID: %d\nItems: %d\nTotal Amount: $%s\nPayment: %s\n\n"+
			"We'll let you know as soon as the kitchen starts preparing it.",
		to.Name, order.ID, order.ID, len(order.Items), total, order.PaymentMethod)

	return n.send(ctx, to.Email, order.ID, subject, bodyHTML, bodyText)
}

func (n *EmailNotifier) StatusChanged(ctx context.Context, to Recipient, order models.Order) error {
	subject := fmt.Sprintf("Order #%d is now %s", order.ID, order.Status)
	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Your order #%d is now <strong>%s</strong>.</p>
        </body>
        </html>`, html.EscapeString(to.Name), order.ID, order.Status)
	bodyText := fmt.Sprintf("Dear %s,\n\nYour order #%d is now %s.", to.Name, order.ID, order.Status)

	return n.send(ctx, to.Email, order.ID, subject, bodyHTML, bodyText)
}

func (n *EmailNotifier) send(ctx context.Context, recipientEmail string, orderID uint, subject, bodyHTML, bodyText string) error {
	if recipientEmail == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	input := &ses.SendEmailInput{
		Source: aws.String(n.sender),
		Destination: &types.Destination{
			ToAddresses: []string{recipientEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		log.Printf("Failed to send email for order %d to %s: %v", orderID, recipientEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email %q sent for order %d to %s", subject, orderID, recipientEmail)
	return nil
}
