package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/thierryazur06/site-api/internal/mail"
	apperrors "github.com/thierryazur06/site-api/internal/pkg/errors"
)

// Mail subjects.
const (
	SubjectConfirmationCode = "Votre code de confirmation"
	SubjectLoginCode        = "Votre code de connexion 2FA"
	SubjectPasswordReset    = "Réinitialisation de votre mot de passe"
)

// ContactNotification is a contact form message forwarded to the site owner.
type ContactNotification struct {
	Nom     string
	Prenom  string
	Email   string
	Objet   string
	Message string
}

// EmailService sends the site's transactional emails. Every failure wraps
// apperrors.ErrDelivery.
type EmailService interface {
	SendConfirmationCode(ctx context.Context, to, code string) error
	SendLoginCode(ctx context.Context, to, code string) error
	SendPasswordResetCode(ctx context.Context, to, code string) error
	SendWelcome(ctx context.Context, to, firstName, password string) error
	SendContactNotification(ctx context.Context, n ContactNotification) error
}

// EmailConfig configures MailEmailService.
type EmailConfig struct {
	AppName      string
	ContactEmail string
	CodeTTL      time.Duration
}

// MailEmailService renders templates and hands them to a mail.Sender.
type MailEmailService struct {
	sender   mail.Sender
	renderer *mail.Renderer
	cfg      EmailConfig
}

// NewMailEmailService creates the email service.
func NewMailEmailService(sender mail.Sender, renderer *mail.Renderer, cfg EmailConfig) (*MailEmailService, error) {
	if sender == nil {
		return nil, fmt.Errorf("mail sender is required for MailEmailService")
	}
	if renderer == nil {
		return nil, fmt.Errorf("mail renderer is required for MailEmailService")
	}
	if cfg.ContactEmail == "" {
		return nil, fmt.Errorf("contact email is required for MailEmailService")
	}
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 10 * time.Minute
	}
	return &MailEmailService{sender: sender, renderer: renderer, cfg: cfg}, nil
}

func (s *MailEmailService) SendConfirmationCode(ctx context.Context, to, code string) error {
	return s.sendCode(ctx, mail.TemplateVerification, SubjectConfirmationCode, to, code)
}

func (s *MailEmailService) SendLoginCode(ctx context.Context, to, code string) error {
	return s.sendCode(ctx, mail.TemplateLoginCode, SubjectLoginCode, to, code)
}

func (s *MailEmailService) SendPasswordResetCode(ctx context.Context, to, code string) error {
	return s.sendCode(ctx, mail.TemplateResetCode, SubjectPasswordReset, to, code)
}

func (s *MailEmailService) SendWelcome(ctx context.Context, to, firstName, password string) error {
	data := mail.WelcomeData{AppName: s.cfg.AppName, FirstName: firstName, Email: to, Password: password}
	subject := fmt.Sprintf("Bienvenue sur l'administration %s", s.cfg.AppName)
	return s.send(ctx, mail.TemplateWelcomeAdmin, subject, to, data)
}

// SendContactNotification mails the configured contact address.
func (s *MailEmailService) SendContactNotification(ctx context.Context, n ContactNotification) error {
	data := mail.ContactData{Nom: n.Nom, Prenom: n.Prenom, Email: n.Email, Objet: n.Objet, Message: n.Message}
	subject := fmt.Sprintf("Contact de %s %s: %s", n.Nom, n.Prenom, n.Objet)
	return s.send(ctx, mail.TemplateContact, subject, s.cfg.ContactEmail, data)
}

func (s *MailEmailService) sendCode(ctx context.Context, tmpl, subject, to, code string) error {
	data := mail.CodeData{AppName: s.cfg.AppName, Code: code, TTLMinutes: int(s.cfg.CodeTTL / time.Minute)}
	return s.send(ctx, tmpl, subject, to, data)
}

func (s *MailEmailService) send(ctx context.Context, tmpl, subject, to string, data any) error {
	html, text, err := s.renderer.Render(tmpl, data)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDelivery, err)
	}
	msg := mail.Message{To: to, Subject: subject, HTML: html, Text: text, IdempotencyKey: idempotencyKey(tmpl, to, subject, text)}
	if err := s.sender.Send(ctx, msg); err != nil {
		zap.L().Error("failed to send email", zap.String("template", tmpl), zap.String("to", to), zap.Error(err))
		return fmt.Errorf("%w: %v", apperrors.ErrDelivery, err)
	}
	return nil
}

// idempotencyKey is stable for identical content, so a resent message is
// delivered once by providers that honour the key.
func idempotencyKey(tmpl, to, subject, text string) string {
	sum := sha256.Sum256([]byte(to + "\x00" + subject + "\x00" + text))
	return tmpl + "/" + hex.EncodeToString(sum[:16])
}
