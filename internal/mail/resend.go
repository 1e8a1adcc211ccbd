package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/resend/resend-go/v2"
)

const (
	resendAttempts = 3
	maxResendWait  = 30 * time.Second
)

// ResendSender sends email through the Resend REST API.
type ResendSender struct {
	from   string
	emails resend.EmailsSvc
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewResendSender creates a Resend sender.
func NewResendSender(apiKey, from string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		from = DefaultFrom
	}
	return &ResendSender{
		from:   from,
		emails: resend.NewClient(apiKey).Emails,
		sleep:  sleepCtx,
	}, nil
}

// Send makes up to resendAttempts calls, backing off between them while
// Resend rate limits the account or the network times out.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
	}
	options := &resend.SendEmailOptions{IdempotencyKey: strings.TrimSpace(msg.IdempotencyKey)}

	for attempt := 1; ; attempt++ {
		_, err := s.emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		wait, retry := resendBackoff(err, attempt)
		if !retry {
			return fmt.Errorf("resend send failed: %w", err)
		}
		if attempt == resendAttempts {
			return fmt.Errorf("resend send failed after %d attempts: %w", attempt, err)
		}
		if err := s.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// resendBackoff returns the wait before attempt+1, or false when err will
// not go away by retrying.
func resendBackoff(err error, attempt int) (time.Duration, bool) {
	var limited *resend.RateLimitError
	var netErr net.Error
	switch {
	case errors.As(err, &limited):
		if secs, convErr := strconv.Atoi(strings.TrimSpace(limited.RetryAfter)); convErr == nil && secs > 0 {
			return min(time.Duration(secs)*time.Second, maxResendWait), true
		}
		return time.Duration(attempt) * time.Second, true
	case errors.Is(err, resend.ErrRateLimit):
		return time.Duration(attempt) * time.Second, true
	case errors.Is(err, context.Canceled):
		return 0, false
	case errors.As(err, &netErr) && netErr.Timeout(),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED):
		return time.Duration(attempt) * 500 * time.Millisecond, true
	default:
		return 0, false
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
