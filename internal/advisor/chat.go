package advisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lvonguyen/cspm-advisor/internal/llm"
)

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser   ChatRole = "user"
	ChatRoleModel  ChatRole = "model"
	ChatRoleSystem ChatRole = "system"
)

// FallbackReply replaces the model's answer when the remote call fails.
const FallbackReply = "I'm sorry, I encountered an error."

// WelcomeMessage opens every chat transcript.
const WelcomeMessage = "Welcome to your Cloud Security AI Advisor. I'm here to help you navigate your security implementation. I have generated some initial recommendations for you to review."

// ChatMessage is one entry in the append-only transcript.
type ChatMessage struct {
	ID   string   `json:"id"`
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// ChatConfig holds configuration for the chat session.
type ChatConfig struct {
	ModelName   string
	Temperature float64
	MaxTokens   int
}

// ChatSession forwards user messages to the model and keeps the transcript.
type ChatSession struct {
	provider llm.Provider
	config   ChatConfig
	system   string
	logger   *zap.Logger
	newID    func() string

	// sendMu serializes Send so each reply directly follows its question.
	// It also guards history.
	sendMu  sync.Mutex
	history []llm.Message

	mu       sync.RWMutex
	messages []ChatMessage
}

// NewChatSession creates a session whose transcript starts with the
// welcome message.
func NewChatSession(provider llm.Provider, config ChatConfig, now time.Time, logger *zap.Logger) *ChatSession {
	s := &ChatSession{
		provider: provider,
		config:   config,
		system:   systemInstruction(now),
		logger:   logger,
		newID:    uuid.NewString,
	}
	s.messages = []ChatMessage{{ID: s.newID(), Role: ChatRoleModel, Text: WelcomeMessage}}
	return s
}

func systemInstruction(now time.Time) string {
	return fmt.Sprintf(`You are a helpful and knowledgeable AI assistant specializing in Palo Alto Networks' Prisma Cloud and Cortex Cloud. Answer the user's questions clearly and concisely. You are part of the "Cloud Security AI Advisor" application. Current Date: %s`,
		now.Format("2006-01-02"))
}

// Messages returns a copy of the transcript.
func (s *ChatSession) Messages() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send appends the user's message, asks the model once and appends its
// reply. A failed call is answered with FallbackReply; no error escapes.
// Only exchanges the model completed are sent back as history, so the
// welcome text and fallback replies never reach the provider.
func (s *ChatSession) Send(ctx context.Context, text string) ChatMessage {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.append(ChatMessage{ID: s.newID(), Role: ChatRoleUser, Text: text})

	turn := llm.Message{Role: llm.RoleUser, Content: text}
	messages := make([]llm.Message, 0, len(s.history)+1)
	messages = append(messages, s.history...)
	messages = append(messages, turn)

	reply := FallbackReply
	response, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:       s.config.ModelName,
		Messages:    messages,
		Temperature: s.config.Temperature,
		MaxTokens:   s.config.MaxTokens,
		System:      s.system,
	})
	if err != nil {
		s.logger.Warn("Chat completion failed", zap.Error(err))
	} else {
		reply = response.Content
		s.history = append(s.history, turn, llm.Message{Role: llm.RoleModel, Content: reply})
	}

	msg := ChatMessage{ID: s.newID(), Role: ChatRoleModel, Text: reply}
	s.append(msg)
	return msg
}

// append adds msg to the transcript.
func (s *ChatSession) append(msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
}
