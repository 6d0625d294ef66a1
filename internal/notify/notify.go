// Package notify delivers report digests to humans, over a messaging
// webhook when one is configured and to stderr otherwise.
package notify

import (
	"context"
	"fmt"
	"os"

	"github.com/pulsemetrics/adpulse/internal/report"
)

// Notifier delivers one notification. Implementations must not mutate
// the payload.
type Notifier interface {
	Send(ctx context.Context, n report.Notification) error
}

// Stderr prints the digest to stderr. It is the fallback when no
// webhook is configured, so a run always surfaces its outcome somewhere.
type Stderr struct{}

// Send writes the notification text to stderr.
func (Stderr) Send(_ context.Context, n report.Notification) error {
	_, err := fmt.Fprintln(os.Stderr, n.Text)
	return err
}
