// Package chat defines the conversation model shared by the session layer,
// the provider implementations and the terminal UI.
package chat

import (
	"fmt"
)

// Role identifies who produced a message. Only two origins exist.
type Role int

const (
	RoleUser Role = iota + 1
	RoleAssistant
)

// String returns the wire name of the role ("user" or "assistant").
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ParseRole converts a wire name back into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "user":
		return RoleUser, nil
	case "assistant":
		return RoleAssistant, nil
	default:
		return 0, fmt.Errorf("unknown role %q (expected user or assistant)", s)
	}
}

// Message is a single entry of a conversation.
type Message struct {
	Role    Role
	Content string

	// Failed is only set in session history, on a user turn whose exchange
	// never produced a reply. Such turns are not part of the provider context.
	Failed bool
}

// UserMessage returns a message authored by the user.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage returns a message authored by the model.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
