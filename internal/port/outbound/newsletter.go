package outbound

import "context"

// NewsletterClient subscribes an email address to the mailing list.
// Subscribe is fire-once: one attempt, no retry, error surfaces inline.
type NewsletterClient interface {
	Subscribe(ctx context.Context, email string) error
}
