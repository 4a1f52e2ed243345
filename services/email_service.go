package services

import (
	"context"
	"fairfoul_server/database"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
	db     *database.DB
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		db:     db,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendVerificationEmail stores a verification token for the user and emails
// the verification link.
func (es *EmailService) SendVerificationEmail(user *tables.User) (*tables.EmailVerification, error) {
	token, err := lib.GenerateRandomToken()
	if err != nil {
		es.logger.Error("Failed to generate verification token", gecho.Field("error", err))
		return nil, err
	}

	expiration := time.Now().Add(es.cfg.Email.VerificationTokenExpiry)

	emailVerif := &tables.EmailVerification{
		UserId:    user.Id,
		Token:     token,
		ExpiresAt: expiration,
		CreatedAt: time.Now(),
	}

	result, err := database.Query[tables.EmailVerification](es.db).Insert(context.Background(), emailVerif)
	if err != nil {
		es.logger.Error("Failed to store email verification token", gecho.Field("error", err))
		return nil, err
	}

	verificationLink := fmt.Sprintf("%s/users/verify-email?token=%s&user_id=%s", es.cfg.Server.FrontendURL, token, user.Id.String())

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #1a1a2e; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.button { display: inline-block; padding: 15px 30px; background-color: #1a1a2e; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Verify your email address</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>Please verify your email by clicking the following link:</p>
					<p style="text-align: center;">
						<a href="%s" class="button">Verify Email</a>
					</p>
					<p>This link expires in %.0f minutes.</p>
					<p>If you did not create an account, you can safely ignore this email.</p>
					<p>Link not working? Copy and paste the following URL into your browser:</p>
					<p style="word-break: break-all;">%s</p>
				</div>
				<div class="footer">
					<p>Fairfoul &middot; This is an automated message, please do not reply.</p>
				</div>
			</div>
		</body>
		</html>
	`, user.Username, verificationLink, es.cfg.Email.VerificationTokenExpiry.Minutes(), verificationLink)

	if err := es.SendEmail([]string{user.Email}, "Verify your email address", emailBody); err != nil {
		return nil, err
	}

	return result, nil
}

// SendOrderConfirmationEmail emails the customer a summary of a placed order
func (es *EmailService) SendOrderConfirmationEmail(email, name string, order *tables.Order) error {
	var lines strings.Builder
	for _, item := range order.Items {
		variant := ""
		if item.ColorName != "" || item.SizeName != "" {
			variant = fmt.Sprintf(" (%s)", strings.TrimPrefix(strings.TrimSpace(item.ColorName+" "+item.SizeName), " "))
		}
		lines.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 8px; border-bottom: 1px solid #eee;">%s%s</td><td style="padding: 8px; text-align: center; border-bottom: 1px solid #eee;">%d</td><td style="padding: 8px; text-align: right; border-bottom: 1px solid #eee;">%s</td></tr>`,
			item.ProductName, variant, item.Quantity, formatCents(item.TotalPrice),
		))
	}

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #1a1a2e; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
				.totals td { padding: 4px 8px; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Thanks for your order!</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>We received your order <strong>%s</strong> and will start preparing it right away.</p>
					<table>
						<tr><th style="text-align: left; padding: 8px;">Item</th><th style="padding: 8px;">Qty</th><th style="text-align: right; padding: 8px;">Total</th></tr>
						%s
					</table>
					<table class="totals">
						<tr><td>Subtotal</td><td style="text-align: right;">%s</td></tr>
						<tr><td>Discount</td><td style="text-align: right;">-%s</td></tr>
						<tr><td><strong>Total</strong></td><td style="text-align: right;"><strong>%s</strong></td></tr>
					</table>
					<p>We will let you know as soon as your order ships.</p>
				</div>
				<div class="footer">
					<p>Fairfoul &middot; This is an automated message, please do not reply.</p>
				</div>
			</div>
		</body>
		</html>
	`, name, order.OrderNumber, lines.String(),
		formatCents(order.Subtotal), formatCents(order.DiscountAmount), formatCents(order.TotalAmount))

	return es.SendEmail([]string{email}, fmt.Sprintf("Order confirmation %s", order.OrderNumber), emailBody)
}

// SendContactNotificationEmail forwards a contact form submission to support
func (es *EmailService) SendContactNotificationEmail(message *tables.ContactMessage) error {
	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<body style="font-family: Arial, sans-serif; color: #333;">
			<h2>New contact message</h2>
			<p><strong>From:</strong> %s &lt;%s&gt;</p>
			<p><strong>Subject:</strong> %s</p>
			<hr>
			<p style="white-space: pre-wrap;">%s</p>
		</body>
		</html>
	`, message.Name, message.Email, message.Subject, message.Message)

	return es.SendEmail(
		[]string{es.cfg.Email.SupportEmail},
		fmt.Sprintf("Contact form: %s", message.Subject),
		emailBody,
	)
}

// formatCents renders an amount in cents as a decimal currency string
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
