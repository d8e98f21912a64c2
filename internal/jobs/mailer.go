package jobs

import (
	"log/slog"
	"sync"

	"github.com/folio-labs/folio-backend/internal/services"
)

// Email is one outbound message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// MailDispatcher delivers email off the request path. Requests enqueue and
// move on; delivery failures are logged and never surfaced. The queue is
// bounded — when it is full the message is dropped with a log line rather
// than blocking a request.
type MailDispatcher struct {
	mailer    services.Mailer
	queue     chan Email
	log       *slog.Logger
	wg        sync.WaitGroup
	isRunning bool
}

// NewMailDispatcher creates a dispatcher over the given mailer.
func NewMailDispatcher(mailer services.Mailer, log *slog.Logger) *MailDispatcher {
	return &MailDispatcher{
		mailer: mailer,
		queue:  make(chan Email, 64),
		log:    log,
	}
}

// Start launches the delivery worker.
func (d *MailDispatcher) Start() {
	if d.isRunning {
		d.log.Warn("mail dispatcher already running")
		return
	}
	d.isRunning = true

	d.wg.Add(1)
	go d.run()
}

// Stop closes the queue and waits for in-flight deliveries. Call only after
// the HTTP server has stopped accepting requests.
func (d *MailDispatcher) Stop() {
	if !d.isRunning {
		return
	}
	d.isRunning = false
	close(d.queue)
	d.wg.Wait()
}

// Notify enqueues a message; it is the services.Notifier implementation.
func (d *MailDispatcher) Notify(to, subject, body string) {
	d.Enqueue(Email{To: to, Subject: subject, Body: body})
}

// Enqueue hands a message to the worker without blocking.
func (d *MailDispatcher) Enqueue(email Email) {
	select {
	case d.queue <- email:
	default:
		d.log.Warn("mail queue full, dropping message", "to", email.To, "subject", email.Subject)
	}
}

func (d *MailDispatcher) run() {
	defer d.wg.Done()

	for email := range d.queue {
		if err := d.mailer.Send(email.To, email.Subject, email.Body); err != nil {
			d.log.Error("failed to send email", "to", email.To, "error", err)
		}
	}
}
