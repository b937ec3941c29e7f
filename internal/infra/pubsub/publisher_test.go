package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"ministry/config"
	"ministry/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalHTTPPublisher_PublishMailEvent(t *testing.T) {
	var received PubSubPushMessage
	var requestIDHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestIDHeader = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	event := &service.MailEvent{
		RequestID: "req-1",
		MessageID: "msg-1",
		Recipient: "member@example.org",
		Subject:   "Welcome",
		HTMLBody:  "<p>Hello</p>",
	}

	require.NoError(t, publisher.PublishMailEvent(context.Background(), event))

	assert.Equal(t, "req-1", requestIDHeader)
	assert.Equal(t, "msg-1", received.Message.MessageID)
	assert.Equal(t, "req-1", received.Message.Attributes["request_id"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.MailEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestLocalHTTPPublisher_WorkerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())

	err := publisher.PublishMailEvent(context.Background(), &service.MailEvent{MessageID: "msg-1"})
	assert.Error(t, err)
}

func TestNewEventPublisher(t *testing.T) {
	newParams := func(cfg *config.Config) PublisherParams {
		return PublisherParams{
			Lc:     fxtest.NewLifecycle(t),
			Ctx:    context.Background(),
			Config: cfg,
			Logger: discardLogger(),
		}
	}

	publisher, err := NewEventPublisher(newParams(&config.Config{}))
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, publisher)
	assert.NoError(t, publisher.PublishMailEvent(context.Background(), &service.MailEvent{MessageID: "msg-1"}))

	publisher, err = NewEventPublisher(newParams(&config.Config{PubSub: &config.PubSubConfig{
		Provider:      "local",
		LocalEndpoint: "http://localhost:8081/push",
	}}))
	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, publisher)

	_, err = NewEventPublisher(newParams(&config.Config{PubSub: &config.PubSubConfig{Provider: "local"}}))
	assert.Error(t, err)

	_, err = NewEventPublisher(newParams(&config.Config{PubSub: &config.PubSubConfig{Provider: "google"}}))
	assert.Error(t, err)

	_, err = NewEventPublisher(newParams(&config.Config{PubSub: &config.PubSubConfig{Provider: "kafka"}}))
	assert.Error(t, err)
}
