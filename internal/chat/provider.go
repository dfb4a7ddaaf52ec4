package chat

import (
	"context"
)

// Provider binds to a remote language model service.
//
// Example usage:
//
//	conv, err := provider.StartChat(ctx)
//	reply, err := conv.Send(ctx, "Hello")
type Provider interface {
	// StartChat opens a new, empty conversation context.
	StartChat(ctx context.Context) (Conversation, error)
}

// Conversation is a provider-side conversation context. Each Send carries
// every previously successful exchange of the same conversation.
type Conversation interface {
	// Send delivers one user message and waits for the single text reply.
	Send(ctx context.Context, text string) (string, error)
}
