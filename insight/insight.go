// Package insight answers questions about a catalog title through a language model.
package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/log"
	"golang.org/x/exp/slices"
)

var (
	ErrNoAPIKey      = errors.New("insights api key is not set")
	ErrEmptyQuestion = errors.New("question is empty")
	ErrPending       = errors.New("an answer is still pending")
)

// Replies shown in place of an answer.
const (
	MissingKeyReply = "API key is missing. Set insights.api_key to ask about titles."
	FailedReply     = "Sorry, I'm having trouble connecting to the AI service right now."
	EmptyReply      = "I couldn't generate a response at this time."
)

// Assistant answers a question about an item.
type Assistant interface {
	Ask(ctx context.Context, item *catalog.Item, question string) (string, error)
}

// Role tells who wrote a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of a conversation.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Instruction is the system instruction for questions about item.
func Instruction(item *catalog.Item, siteName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert film critic and AI assistant for a streaming service called %s.\n", siteName)
	fmt.Fprintf(&b, "The user is asking about the title: %q.\n\n", item.Title)
	b.WriteString("Details:\n")

	detail := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "- %s: %s\n", name, value)
		}
	}

	detail("Description", item.Description)
	detail("Genre", strings.Join(item.Genres, ", "))
	detail("Cast", strings.Join(item.Cast, ", "))
	detail("Director", item.Director)
	if item.Year > 0 {
		detail("Year", fmt.Sprint(item.Year))
	}
	if item.IsEpisodic() {
		detail("Episodes", fmt.Sprint(len(item.Episodes)))
	}

	b.WriteString("\nAnswer the user's question concisely, enthusiastically and helpfully. Keep it under 100 words if possible.")
	return b.String()
}

// Greeting opens a conversation about item.
func Greeting(item *catalog.Item, siteName string) string {
	return fmt.Sprintf(
		"Hi! I'm your %s AI assistant. Ask me anything about %q. Want to know about the plot, cast, or similar titles?",
		siteName,
		item.Title,
	)
}

// Conversation is the message history about one item. At most one question
// is in flight at a time.
type Conversation struct {
	item      *catalog.Item
	assistant Assistant

	mu       sync.Mutex
	messages []Message
	pending  bool
}

// NewConversation starts a conversation about item with a greeting.
func NewConversation(assistant Assistant, item *catalog.Item, siteName string) *Conversation {
	return &Conversation{
		item:      item,
		assistant: assistant,
		messages:  []Message{{Role: RoleModel, Text: Greeting(item, siteName)}},
	}
}

// Item returns the item the conversation is about.
func (c *Conversation) Item() *catalog.Item {
	return c.item
}

// Messages returns a copy of the history.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// Pending reports whether a question awaits its answer.
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Ask records question and the reply to it. Assistant failures become a
// reply, only an empty question or one asked while another is pending is
// an error.
func (c *Conversation) Ask(ctx context.Context, question string) (Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Message{}, ErrEmptyQuestion
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return Message{}, ErrPending
	}
	c.pending = true
	c.messages = append(c.messages, Message{Role: RoleUser, Text: question})
	c.mu.Unlock()

	reply := Message{Role: RoleModel, Text: c.answer(ctx, question)}

	c.mu.Lock()
	c.messages = append(c.messages, reply)
	c.pending = false
	c.mu.Unlock()

	return reply, nil
}

func (c *Conversation) answer(ctx context.Context, question string) string {
	if c.assistant == nil {
		return MissingKeyReply
	}

	text, err := c.assistant.Ask(ctx, c.item, question)
	switch {
	case errors.Is(err, ErrNoAPIKey):
		return MissingKeyReply
	case err != nil:
		log.Errorf("insight: %s: %v", c.item.ID, err)
		return FailedReply
	case strings.TrimSpace(text) == "":
		return EmptyReply
	default:
		return text
	}
}
