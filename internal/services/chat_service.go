package services

import (
	"context"

	"shopmate-chat/internal/domain/chat"
	"shopmate-chat/internal/repository"
	"shopmate-chat/pkg/logger"
)

// MaxHistory bounds how many stored turns feed the model context. The window
// caps the payload sent downstream no matter how long a conversation grows.
const MaxHistory = 10

const systemPrompt = "You are a friendly, concise AI shopping assistant that remembers " +
	"the user's preferences and recommends products accordingly. Keep answers moderately short."

// Completer is the hosted inference service.
type Completer interface {
	Complete(ctx context.Context, messages []chat.PromptMessage) (string, error)
}

// TurnCache holds the recent-turn window for a chat/user pair. A nil cache is
// valid; cache errors never fail a request.
type TurnCache interface {
	GetRecent(ctx context.Context, userID, chatID int64) ([]chat.Turn, error)
	SetRecent(ctx context.Context, userID, chatID int64, turns []chat.Turn) error
	Invalidate(ctx context.Context, userID, chatID int64) error
}

type ChatService struct {
	turns     repository.ChatRepository
	completer Completer
	cache     TurnCache
	logger    *logger.Logger
}

func NewChatService(turns repository.ChatRepository, completer Completer, cache TurnCache, l *logger.Logger) *ChatService {
	return &ChatService{
		turns:     turns,
		completer: completer,
		cache:     cache,
		logger:    l,
	}
}

// SendMessage runs one chat turn: build the bounded context, ask the model,
// persist the turn. The turn only succeeds if persistence succeeds; a failed
// write fails the whole request even though the model already replied.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID int64, message string) (string, error) {
	messages, err := s.buildContext(ctx, userID, chatID, message)
	if err != nil {
		return "", err
	}

	reply, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return "", err
	}

	turn := &chat.Turn{
		ChatID:   chatID,
		UserID:   userID,
		Message:  message,
		Response: reply,
	}
	if err := s.turns.Append(ctx, turn); err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID, chatID); err != nil && s.logger != nil {
			s.logger.Warnf("invalidate turn cache: %s", err)
		}
	}

	return reply, nil
}

// buildContext assembles the ordered prompt: the fixed system preamble, up to
// MaxHistory stored turns as alternating user/assistant messages oldest
// first, then the new user message.
func (s *ChatService) buildContext(ctx context.Context, userID, chatID int64, message string) ([]chat.PromptMessage, error) {
	history, err := s.recentTurns(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	messages := make([]chat.PromptMessage, 0, 2*len(history)+2)
	messages = append(messages, chat.PromptMessage{Role: chat.RoleSystem, Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, chat.PromptMessage{Role: chat.RoleUser, Content: turn.Message})
		messages = append(messages, chat.PromptMessage{Role: chat.RoleAssistant, Content: turn.Response})
	}
	messages = append(messages, chat.PromptMessage{Role: chat.RoleUser, Content: message})

	return messages, nil
}

func (s *ChatService) recentTurns(ctx context.Context, userID, chatID int64) ([]chat.Turn, error) {
	if s.cache != nil {
		cached, err := s.cache.GetRecent(ctx, userID, chatID)
		if err != nil {
			if s.logger != nil {
				s.logger.Warnf("read turn cache: %s", err)
			}
		} else if cached != nil {
			return cached, nil
		}
	}

	history, err := s.turns.RecentTurns(ctx, chatID, userID, MaxHistory)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetRecent(ctx, userID, chatID, history); err != nil && s.logger != nil {
			s.logger.Warnf("write turn cache: %s", err)
		}
	}
	return history, nil
}

// History groups all of the user's turns into per-chat transcripts. Chats
// appear in the order they are first encountered scanning the stored turns,
// and turns within a chat keep insertion order.
func (s *ChatService) History(ctx context.Context, userID int64) ([]chat.Transcript, error) {
	turns, err := s.turns.AllTurns(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := make(map[int64]int)
	transcripts := make([]chat.Transcript, 0)
	for _, t := range turns {
		i, seen := index[t.ChatID]
		if !seen {
			i = len(transcripts)
			index[t.ChatID] = i
			transcripts = append(transcripts, chat.Transcript{ChatID: t.ChatID})
		}
		transcripts[i].Messages = append(transcripts[i].Messages,
			chat.TranscriptEntry{From: chat.SpeakerUser, Text: t.Message},
			chat.TranscriptEntry{From: chat.SpeakerBot, Text: t.Response},
		)
	}

	return transcripts, nil
}
