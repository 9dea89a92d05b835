package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureSender struct {
	mu     sync.Mutex
	emails []Email
	pushes []Push
	err    error
}

func (c *captureSender) SendEmail(ctx context.Context, e Email) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.emails = append(c.emails, e)
	return nil
}

func (c *captureSender) SendPush(ctx context.Context, p Push) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.pushes = append(c.pushes, p)
	return nil
}

func (c *captureSender) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.emails), len(c.pushes)
}

func TestDispatcherDeliversQueued(t *testing.T) {
	sender := &captureSender{}
	d := NewDispatcher(sender, sender, 16, 2, zap.NewNop())
	d.Start()

	d.Email(Email{To: "a@example.com", Subject: "hi"})
	d.Push(Push{Token: "tok", Title: "ping"})
	d.Stop()

	emails, pushes := sender.counts()
	assert.Equal(t, 1, emails)
	assert.Equal(t, 1, pushes)
	assert.Equal(t, "a@example.com", sender.emails[0].To)
	assert.Equal(t, "tok", sender.pushes[0].Token)
}

func TestDispatcherStopDrainsQueue(t *testing.T) {
	sender := &captureSender{}
	d := NewDispatcher(sender, sender, 64, 1, zap.NewNop())
	d.Start()

	for i := 0; i < 20; i++ {
		d.Email(Email{To: "a@example.com"})
	}
	d.Stop()

	emails, _ := sender.counts()
	assert.Equal(t, 20, emails, "everything enqueued before Stop must be delivered")
}

func TestDispatcherEnqueueNeverBlocks(t *testing.T) {
	sender := &captureSender{}
	// Workers never started: the queue fills and stays full.
	d := NewDispatcher(sender, sender, 2, 1, zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			d.Email(Email{To: "a@example.com"})
			d.Push(Push{Title: "ping"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}
}

func TestDispatcherSwallowsSendFailures(t *testing.T) {
	sender := &captureSender{err: errors.New("smtp down")}
	d := NewDispatcher(sender, sender, 8, 2, zap.NewNop())
	d.Start()

	d.Email(Email{To: "a@example.com"})
	d.Push(Push{Title: "ping"})
	d.Stop() // must not panic or hang on failed deliveries

	emails, pushes := sender.counts()
	assert.Zero(t, emails)
	assert.Zero(t, pushes)
}

func TestDispatcherNilSendersDisabled(t *testing.T) {
	d := NewDispatcher(nil, nil, 8, 2, zap.NewNop())
	d.Start()

	d.Email(Email{To: "a@example.com"})
	d.Push(Push{Title: "ping"})

	require.NotPanics(t, d.Stop)
}

func TestDispatcherStopIdempotent(t *testing.T) {
	d := NewDispatcher(nil, nil, 8, 1, zap.NewNop())
	d.Start()
	d.Stop()
	require.NotPanics(t, d.Stop)
}
