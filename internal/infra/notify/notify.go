// Package notify shows transient user notifications. The OS toast is tried
// first; if it fails for any reason the message goes to an in-app balloon.
package notify

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/battalert/battalert/internal/infra/metrics"
)

// ToastFunc delivers an OS-level notification.
type ToastFunc func(title, message, icon string) error

// Balloon is the in-app fallback surface.
type Balloon interface {
	Show(title, message string, d time.Duration)
}

// Options controls notification delivery.
type Options struct {
	Icon     string
	Duration time.Duration
	// Toast disables the OS toast entirely when false (headless machines).
	Toast bool
}

// Notifier implements domain.Notifier.
type Notifier struct {
	opts    Options
	toast   ToastFunc
	balloon Balloon
	breaker *Breaker
}

// New creates a notifier that toasts through beeep and falls back to b.
func New(opts Options, b Balloon) *Notifier {
	return &Notifier{
		opts:    opts,
		toast:   beeepToast,
		balloon: b,
		breaker: NewBreaker(DefaultBreakerConfig()),
	}
}

// SetBalloon replaces the fallback surface (the dashboard installs its own).
func (n *Notifier) SetBalloon(b Balloon) { n.balloon = b }

// Notify shows title/message. It never fails and never panics.
func (n *Notifier) Notify(title, message string) {
	if n.opts.Toast && n.breaker.Allow() == nil {
		err := n.tryToast(title, message)
		if err == nil {
			n.breaker.RecordSuccess()
			metrics.Notifications.WithLabelValues("toast").Inc()
			return
		}
		n.breaker.RecordFailure()
		log.Printf("[notify] toast failed (breaker %s): %v", n.breaker.State(), err)
	}

	if n.balloon != nil {
		n.balloon.Show(title, message, n.opts.Duration)
	}
	metrics.Notifications.WithLabelValues("balloon").Inc()
}

func (n *Notifier) tryToast(title, message string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("toast panic: %v", r)
		}
	}()
	return n.toast(title, message, n.opts.Icon)
}

func beeepToast(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

// ─── Balloons ───────────────────────────────────────────────────────────────

// TerminalBalloon writes the notice to a terminal, ringing the bell.
type TerminalBalloon struct {
	W io.Writer
}

// Show prints the notice. The duration is irrelevant for a scrolling terminal.
func (b TerminalBalloon) Show(title, message string, _ time.Duration) {
	fmt.Fprintf(b.W, "\a[%s] %s\n", title, message)
}
