// Package notification dispatches best-effort email outside the request path.
package notification

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"ministry/config"
	deliverycontext "ministry/internal/delivery/context"
	"ministry/internal/domain/constants"
	"ministry/internal/domain/service"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// dispatchFunc delivers one message. It runs on a background goroutine.
type dispatchFunc func(ctx context.Context, recipient, subject, htmlBody string) error

type asyncNotifier struct {
	dispatch dispatchFunc
	mode     string
	timeout  time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NotifierParams holds dependencies for the Notifier
type NotifierParams struct {
	fx.In

	Lc        fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Mailer    service.Mailer
	Publisher service.EventPublisher
}

// NewNotifier builds a Notifier that either calls the Mailer directly or
// queues a MailEvent for the mail worker, depending on email.dispatch.
func NewNotifier(params NotifierParams) service.Notifier {
	mode := strings.ToLower(strings.TrimSpace(params.Config.Email.Dispatch))

	var dispatch dispatchFunc
	switch mode {
	case constants.MailDispatchQueue:
		dispatch = queueDispatch(params.Publisher)
	default:
		mode = constants.MailDispatchInline
		dispatch = params.Mailer.Send
	}

	n := newAsyncNotifier(dispatch, mode, params.Config.Email.Timeout, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: n.drain,
	})

	return n
}

func newAsyncNotifier(dispatch dispatchFunc, mode string, timeout time.Duration, logger *slog.Logger) *asyncNotifier {
	return &asyncNotifier{
		dispatch: dispatch,
		mode:     mode,
		timeout:  timeout,
		logger:   logger,
	}
}

// Notify returns immediately. The send keeps the request's values (request id,
// logger) but not its cancellation, and is bounded by email.timeout.
func (n *asyncNotifier) Notify(ctx context.Context, recipient, subject, htmlBody string) {
	if strings.TrimSpace(recipient) == "" {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, n.logger)
	sendCtx := context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(sendCtx, n.timeout)
		defer cancel()

		if err := n.dispatch(ctx, recipient, subject, htmlBody); err != nil {
			logger.Error("Failed to send email",
				slog.String("mode", n.mode),
				slog.String("subject", subject),
				slog.Any("error", err),
			)

			return
		}

		logger.Debug("Email dispatched",
			slog.String("mode", n.mode),
			slog.String("subject", subject),
		)
	}()
}

// drain waits for in-flight sends until ctx expires.
func (n *asyncNotifier) drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		n.logger.Warn("Shutdown interrupted pending email deliveries")

		return nil
	}
}

func queueDispatch(publisher service.EventPublisher) dispatchFunc {
	return func(ctx context.Context, recipient, subject, htmlBody string) error {
		return publisher.PublishMailEvent(ctx, &service.MailEvent{
			RequestID: deliverycontext.GetRequestIDFromContext(ctx),
			MessageID: uuid.NewString(),
			Recipient: recipient,
			Subject:   subject,
			HTMLBody:  htmlBody,
		})
	}
}
