package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ministry/internal/domain/service"
	"ministry/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	recipient, subject, body string
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []sentMail
	fails int
}

func (m *fakeMailer) Send(_ context.Context, recipient, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fails > 0 {
		m.fails--

		return errors.New("smtp: 421 service not available")
	}
	m.sent = append(m.sent, sentMail{recipient: recipient, subject: subject, body: htmlBody})

	return nil
}

type memoryDedup struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func (d *memoryDedup) Claim(_ context.Context, key string, _ time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.keys[key]; ok {
		return false, nil
	}
	d.keys[key] = struct{}{}

	return true, nil
}

func (d *memoryDedup) Release(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.keys, key)

	return nil
}

func newTestHandler() (*PushHandler, *fakeMailer) {
	mailer := &fakeMailer{}

	return &PushHandler{
		verifyToken: verifyPubSubToken,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		mailer:      mailer,
		dedup:       &memoryDedup{keys: map[string]struct{}{}},
	}, mailer
}

func pushBody(t *testing.T, event *service.MailEvent) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = "pubsub-1"
	msg.Message.Attributes = map[string]string{"request_id": "req-42"}
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func push(h *PushHandler, body string) int {
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	_ = h.HandlePush(c)

	return rec.Code
}

func welcomeEvent() *service.MailEvent {
	return &service.MailEvent{
		MessageID: "mail-1",
		Recipient: "grace@example.org",
		Subject:   "Welcome to Heavenly Nature Ministry",
		HTMLBody:  "<p>Welcome</p>",
	}
}

func TestHandlePush_DeliversOnce(t *testing.T) {
	h, mailer := newTestHandler()
	body := pushBody(t, welcomeEvent())

	assert.Equal(t, http.StatusOK, push(h, body))
	assert.Equal(t, http.StatusOK, push(h, body))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, sentMail{
		recipient: "grace@example.org",
		subject:   "Welcome to Heavenly Nature Ministry",
		body:      "<p>Welcome</p>",
	}, mailer.sent[0])
}

func TestHandlePush_MailerFailureIsRetried(t *testing.T) {
	h, mailer := newTestHandler()
	mailer.fails = 1
	body := pushBody(t, welcomeEvent())

	assert.Equal(t, http.StatusServiceUnavailable, push(h, body))
	assert.Empty(t, mailer.sent)

	assert.Equal(t, http.StatusOK, push(h, body))
	assert.Len(t, mailer.sent, 1)
}

func TestHandlePush_FallsBackToPubSubMessageID(t *testing.T) {
	h, mailer := newTestHandler()
	event := welcomeEvent()
	event.MessageID = ""
	body := pushBody(t, event)

	assert.Equal(t, http.StatusOK, push(h, body))
	assert.Equal(t, http.StatusOK, push(h, body))
	assert.Len(t, mailer.sent, 1)
}

func TestHandlePush_PoisonMessages(t *testing.T) {
	h, mailer := newTestHandler()

	assert.Equal(t, http.StatusBadRequest, push(h, `{"message":{"data":"%%%"}}`))
	assert.Equal(t, http.StatusBadRequest, push(h, `{"message":{"data":"`+base64.StdEncoding.EncodeToString([]byte("not json"))+`"}}`))

	noRecipient := welcomeEvent()
	noRecipient.Recipient = " "
	assert.Equal(t, http.StatusOK, push(h, pushBody(t, noRecipient)), "non-retryable failures are acknowledged")

	assert.Empty(t, mailer.sent)
}

func TestHandlePush_RejectsUnverifiedPush(t *testing.T) {
	h, mailer := newTestHandler()
	h.verifyPushAuth = true
	h.verifyToken = func(*http.Request) error { return errors.New("bad token") }

	assert.Equal(t, http.StatusUnauthorized, push(h, pushBody(t, welcomeEvent())))
	assert.Empty(t, mailer.sent)
}

func TestVerifyPubSubToken_RequiresBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/push", nil)
	require.Error(t, verifyPubSubToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.ErrorContains(t, verifyPubSubToken(req), "invalid authorization header format")
}

func TestExtractRequestID_Priority(t *testing.T) {
	h, _ := newTestHandler()

	var msg PubSubMessage
	msg.Message.Attributes = map[string]string{"request_id": "from-attr"}
	assert.Equal(t, "from-attr", h.extractRequestID(context.Background(), &msg, &service.MailEvent{RequestID: "from-event"}))

	msg.Message.Attributes = nil
	assert.Equal(t, "from-event", h.extractRequestID(context.Background(), &msg, &service.MailEvent{RequestID: "from-event"}))
	assert.NotEmpty(t, h.extractRequestID(context.Background(), &msg, &service.MailEvent{}))
}
