package notifier

import "context"

// Sender is the interface for external notification channels.
type Sender interface {
	// Name returns the sender's identifier (e.g., "telegram").
	Name() string

	// Deliver sends a formatted text payload to the external channel,
	// blocking until the channel accepts or rejects it.
	Deliver(ctx context.Context, text string) error
}
