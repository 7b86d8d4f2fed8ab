package domain

import "strings"

// Sender identifies who wrote a turn.
type Sender string

const (
	// SenderUser marks a turn typed by the user.
	SenderUser Sender = "user"
	// SenderAssistant marks a turn produced by the assistant (or a fallback).
	SenderAssistant Sender = "assistant"
)

// Fixed assistant texts.
const (
	// GreetingText seeds the conversation once a report is ready.
	GreetingText = "Your tax report is ready! Ask me any questions about your tax " +
		"calculations or recommendations for tax optimization."

	// FallbackNoAnswer is appended when the assistant replied without an answer.
	FallbackNoAnswer = "Sorry, I couldn't understand."

	// FallbackError is appended when the assistant could not be reached.
	FallbackError = "There was an error. Please try again."
)

// Turn is one message in the conversation.
type Turn struct {
	Sender Sender
	Text   string
}

// AskRequest describes one question sent to the assistant.
// Epoch identifies the conversation it belongs to.
type AskRequest struct {
	Epoch    uint64
	Message  string
	Report   *AIReport
	UserData map[string]any
}

// Conversation is the ordered message log for the active session.
// It is append-only until cleared by a new selection or reseeded by a
// successful generation. At most one answer is outstanding at a time.
type Conversation struct {
	turns   []Turn
	epoch   uint64
	pending bool
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{turns: []Turn{}}
}

// Reset empties the conversation. Answers to earlier questions are discarded
// when they arrive.
func (c *Conversation) Reset() {
	c.epoch++
	c.turns = []Turn{}
	c.pending = false
}

// Seed resets the conversation and starts it with one assistant turn.
func (c *Conversation) Seed(greeting string) {
	c.Reset()
	c.turns = append(c.turns, Turn{Sender: SenderAssistant, Text: greeting})
}

// Submit appends the user's turn and returns the request to send.
// Blank text is ignored, as is any message while an answer is pending;
// in both cases ok is false and the conversation is unchanged.
func (c *Conversation) Submit(text string, report *AIReport, userData map[string]any) (AskRequest, bool) {
	if strings.TrimSpace(text) == "" || c.pending {
		return AskRequest{}, false
	}

	c.turns = append(c.turns, Turn{Sender: SenderUser, Text: text})
	c.pending = true

	if userData == nil {
		userData = map[string]any{}
	}
	return AskRequest{
		Epoch:    c.epoch,
		Message:  text,
		Report:   report.Clone(),
		UserData: userData,
	}, true
}

// Resolve appends the assistant's reply to req. An empty answer becomes
// FallbackNoAnswer and an error becomes FallbackError. Replies for an
// earlier epoch are dropped and false is returned.
func (c *Conversation) Resolve(req AskRequest, answer string, err error) bool {
	if req.Epoch != c.epoch || !c.pending {
		return false
	}
	c.pending = false

	text := answer
	switch {
	case err != nil:
		text = FallbackError
	case answer == "":
		text = FallbackNoAnswer
	}

	c.turns = append(c.turns, Turn{Sender: SenderAssistant, Text: text})
	return true
}

// Turns returns a copy of the conversation in order.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	return len(c.turns)
}

// Last returns the most recent turn.
func (c *Conversation) Last() (Turn, bool) {
	if len(c.turns) == 0 {
		return Turn{}, false
	}
	return c.turns[len(c.turns)-1], true
}

// Pending reports whether an answer is outstanding.
func (c *Conversation) Pending() bool {
	return c.pending
}

// Epoch returns the current conversation epoch.
func (c *Conversation) Epoch() uint64 {
	return c.epoch
}
