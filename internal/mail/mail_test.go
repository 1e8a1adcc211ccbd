package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent  []*gomail.Message
	err   error
	block chan struct{}
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.block != nil {
		<-d.block
	}
	d.sent = append(d.sent, m...)
	return d.err
}

func rawMessage(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestRenderer_AllTemplates(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	tests := []struct {
		name string
		data any
		want []string
	}{
		{TemplateVerification, CodeData{AppName: "Thierry Azur 06", Code: "123456", TTLMinutes: 10}, []string{"123456", "10 minutes"}},
		{TemplateLoginCode, CodeData{AppName: "Thierry Azur 06", Code: "654321", TTLMinutes: 10}, []string{"654321"}},
		{TemplateResetCode, CodeData{AppName: "Thierry Azur 06", Code: "111222", TTLMinutes: 10}, []string{"111222"}},
		{TemplateWelcomeAdmin, WelcomeData{AppName: "Thierry Azur 06", FirstName: "Marie", Email: "marie@example.com", Password: "Xy7!abcdEFGH"}, []string{"Marie", "Xy7!abcdEFGH"}},
		{TemplateContact, ContactData{Nom: "Durand", Prenom: "Paul", Email: "paul@example.com", Objet: "Devis toiture", Message: "Bonjour"}, []string{"Durand", "Devis toiture", "Bonjour"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, text, err := r.Render(tt.name, tt.data)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, html, w)
				assert.Contains(t, text, w)
			}
		})
	}
}

func TestRenderer_EscapesHTMLOnly(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html, text, err := r.Render(TemplateContact, ContactData{Nom: "<b>x</b>", Message: "a & b"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>x</b>")
	assert.Contains(t, html, "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, text, "<b>x</b>")
	assert.Contains(t, text, "a & b")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, _, err = r.Render("missing", nil)
	assert.Error(t, err)
}

func TestSMTPSender_Send(t *testing.T) {
	d := &fakeDialer{}
	s := &SMTPSender{from: DefaultFrom, dialer: d}

	err := s.Send(context.Background(), Message{To: "a@example.com", Subject: "Votre code de confirmation", HTML: "<p>123456</p>", Text: "123456"})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	raw := rawMessage(t, d.sent[0])
	assert.Contains(t, raw, "To: a@example.com")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "no-reply@thierry-azure.fr")
}

func TestSMTPSender_HTMLOnly(t *testing.T) {
	d := &fakeDialer{}
	s := &SMTPSender{from: DefaultFrom, dialer: d}

	require.NoError(t, s.Send(context.Background(), Message{To: "a@example.com", Subject: "s", HTML: "<p>hi</p>"}))
	raw := rawMessage(t, d.sent[0])
	assert.Contains(t, raw, "text/html")
	assert.NotContains(t, raw, "text/plain")
}

func TestSMTPSender_Errors(t *testing.T) {
	t.Run("invalid message", func(t *testing.T) {
		s := &SMTPSender{from: DefaultFrom, dialer: &fakeDialer{}}
		assert.ErrorIs(t, s.Send(context.Background(), Message{Subject: "s"}), ErrInvalidMessage)
	})

	t.Run("dial failure", func(t *testing.T) {
		s := &SMTPSender{from: DefaultFrom, dialer: &fakeDialer{err: errors.New("connection refused")}}
		err := s.Send(context.Background(), Message{To: "a@example.com", Subject: "s", Text: "t"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("context cancelled", func(t *testing.T) {
		block := make(chan struct{})
		defer close(block)
		s := &SMTPSender{from: DefaultFrom, dialer: &fakeDialer{block: block}}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.Send(ctx, Message{To: "a@example.com", Subject: "s", Text: "t"}), context.Canceled)
	})
}

func TestNewSMTPSender(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{})
	assert.Error(t, err)

	s, err := NewSMTPSender(SMTPConfig{Host: "localhost", Port: 1025})
	require.NoError(t, err)
	assert.Equal(t, DefaultFrom, s.from)
}

func TestNewResendSender(t *testing.T) {
	_, err := NewResendSender("", "")
	assert.Error(t, err)

	s, err := NewResendSender("re_test", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultFrom, s.from)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestResendBackoff(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		attempt   int
		wantWait  time.Duration
		wantRetry bool
	}{
		{"retry after header", &resend.RateLimitError{RetryAfter: "3"}, 1, 3 * time.Second, true},
		{"retry after capped", &resend.RateLimitError{RetryAfter: "120"}, 1, maxResendWait, true},
		{"rate limit without header", &resend.RateLimitError{}, 2, 2 * time.Second, true},
		{"wrapped rate limit sentinel", fmt.Errorf("send: %w", resend.ErrRateLimit), 1, time.Second, true},
		{"network timeout", timeoutErr{}, 2, time.Second, true},
		{"connection reset", fmt.Errorf("post: %w", syscall.ECONNRESET), 1, 500 * time.Millisecond, true},
		{"canceled", fmt.Errorf("post: %w", context.Canceled), 1, 0, false},
		{"validation error", errors.New("invalid from address"), 1, 0, false},
		{"timeout in text only", errors.New("gateway timeout"), 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wait, retry := resendBackoff(tt.err, tt.attempt)
			assert.Equal(t, tt.wantRetry, retry)
			assert.Equal(t, tt.wantWait, wait)
		})
	}
}

type fakeEmails struct {
	resend.EmailsSvc
	errs    []error
	calls   int
	options []*resend.SendEmailOptions
}

func (f *fakeEmails) SendWithOptions(_ context.Context, _ *resend.SendEmailRequest, options *resend.SendEmailOptions) (*resend.SendEmailResponse, error) {
	f.calls++
	f.options = append(f.options, options)
	if len(f.errs) == 0 {
		return &resend.SendEmailResponse{Id: "email_1"}, nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return nil, err
}

func newFakeResend(errs ...error) (*ResendSender, *fakeEmails, *[]time.Duration) {
	emails := &fakeEmails{errs: errs}
	var waits []time.Duration
	s := &ResendSender{
		from:   DefaultFrom,
		emails: emails,
		sleep: func(_ context.Context, d time.Duration) error {
			waits = append(waits, d)
			return nil
		},
	}
	return s, emails, &waits
}

func TestResendSender_RetriesThenSucceeds(t *testing.T) {
	s, emails, waits := newFakeResend(&resend.RateLimitError{RetryAfter: "2"}, timeoutErr{})
	msg := Message{To: "a@example.com", Subject: "s", Text: "t", IdempotencyKey: " contact/abc "}

	require.NoError(t, s.Send(context.Background(), msg))
	assert.Equal(t, 3, emails.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, time.Second}, *waits)
	for _, o := range emails.options {
		assert.Equal(t, "contact/abc", o.IdempotencyKey)
	}
}

func TestResendSender_NoWaitAfterLastAttempt(t *testing.T) {
	limited := &resend.RateLimitError{RetryAfter: "5"}
	s, emails, waits := newFakeResend(limited, limited, limited, limited)

	err := s.Send(context.Background(), Message{To: "a@example.com", Subject: "s", Text: "t"})
	require.Error(t, err)
	assert.ErrorIs(t, err, resend.ErrRateLimit)
	assert.Equal(t, resendAttempts, emails.calls)
	assert.Len(t, *waits, resendAttempts-1)
}

func TestResendSender_PermanentErrorNotRetried(t *testing.T) {
	s, emails, waits := newFakeResend(errors.New("invalid from address"))

	err := s.Send(context.Background(), Message{To: "a@example.com", Subject: "s", Text: "t"})
	require.Error(t, err)
	assert.Equal(t, 1, emails.calls)
	assert.Empty(t, *waits)
}

func TestResendSender_InvalidMessage(t *testing.T) {
	s, emails, _ := newFakeResend()
	assert.ErrorIs(t, s.Send(context.Background(), Message{}), ErrInvalidMessage)
	assert.Zero(t, emails.calls)
}

func TestSleepCtx(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	assert.ErrorIs(t, sleepCtx(ctx, time.Minute), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	assert.NoError(t, sleepCtx(context.Background(), time.Millisecond))
}

func TestNoopSender(t *testing.T) {
	assert.NoError(t, NoopSender{}.Send(context.Background(), Message{To: "a@example.com", Subject: "s"}))
	assert.ErrorIs(t, NoopSender{}.Send(context.Background(), Message{}), ErrInvalidMessage)
}
