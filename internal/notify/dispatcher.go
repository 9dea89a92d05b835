// Package notify decouples notification delivery from the request path.
// Core operations enqueue and move on; workers deliver in the background.
// Delivery is strictly best-effort: failures are logged and dropped, they
// never surface to the caller and never undo a committed core effect.
package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const sendTimeout = 30 * time.Second

type task struct {
	email *Email
	push  *Push
}

type Dispatcher struct {
	email   EmailSender // nil disables email delivery
	push    PushSender  // nil disables push delivery
	tasks   chan task
	workers int
	log     *zap.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewDispatcher(email EmailSender, push PushSender, queueSize, workers int, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		email:   email,
		push:    push,
		tasks:   make(chan task, queueSize),
		workers: workers,
		log:     log,
	}
}

// Start launches the delivery workers. Deliveries are independent of each
// other, so fanning them out across workers is safe.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop closes the queue and waits for in-flight deliveries to finish.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.tasks)
	})
	d.wg.Wait()
}

// Email enqueues an email without blocking the request path. When the
// queue is full the message is dropped and logged.
func (d *Dispatcher) Email(e Email) {
	select {
	case d.tasks <- task{email: &e}:
	default:
		d.log.Warn("notification queue full, dropping email",
			zap.String("to", e.To),
			zap.String("subject", e.Subject),
		)
	}
}

// Push enqueues a push notification without blocking the request path.
func (d *Dispatcher) Push(p Push) {
	select {
	case d.tasks <- task{push: &p}:
	default:
		d.log.Warn("notification queue full, dropping push",
			zap.String("title", p.Title),
		)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for t := range d.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		switch {
		case t.email != nil:
			d.deliverEmail(ctx, *t.email)
		case t.push != nil:
			d.deliverPush(ctx, *t.push)
		}
		cancel()
	}
}

func (d *Dispatcher) deliverEmail(ctx context.Context, e Email) {
	if d.email == nil {
		d.log.Debug("email delivery disabled", zap.String("to", e.To))
		return
	}
	if err := d.email.SendEmail(ctx, e); err != nil {
		d.log.Error("failed to send email",
			zap.String("to", e.To),
			zap.String("subject", e.Subject),
			zap.Error(err),
		)
		return
	}
	d.log.Info("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
}

func (d *Dispatcher) deliverPush(ctx context.Context, p Push) {
	if d.push == nil {
		d.log.Debug("push delivery disabled")
		return
	}
	if err := d.push.SendPush(ctx, p); err != nil {
		d.log.Error("failed to send push notification",
			zap.String("title", p.Title),
			zap.Error(err),
		)
		return
	}
	d.log.Info("push notification sent", zap.String("title", p.Title))
}
