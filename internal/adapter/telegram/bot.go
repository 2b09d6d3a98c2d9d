package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gemini-chatbot-backend/internal/agent"
	"gemini-chatbot-backend/internal/usecase/chat"
)

// Bot is an optional second transport over the same chat service. Each
// telegram chat becomes its own conversation session, so users never see
// each other's turns.
type Bot struct {
	api  *tgbotapi.BotAPI
	chat *chat.Service
}

func NewBot(token string, chatSvc *chat.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:  api,
		chat: chatSvc,
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	sessionID := fmt.Sprintf("telegram:%d", msg.Chat.ID)
	text := strings.TrimSpace(msg.Text)

	if text == "/reset" {
		b.chat.ResetSession(sessionID, true)
		b.sendText(msg.Chat.ID, msg.MessageID, "conversation cleared")
		return
	}

	result, err := b.chat.Chat(ctx, sessionID, agent.TypeBasic, text)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			b.sendText(msg.Chat.ID, msg.MessageID, "i need some text to work with")
			return
		}
		log.Printf("telegram chat failed: %v", err)
		b.sendText(msg.Chat.ID, msg.MessageID, "failed to reach the model, try again later")
		return
	}

	b.sendText(msg.Chat.ID, msg.MessageID, result.Reply)
}

func (b *Bot) sendText(chatID int64, replyTo int, text string) {
	const chunkSize = 2048

	for idx, chunk := range splitText(text, chunkSize) {
		reply := tgbotapi.NewMessage(chatID, chunk)
		reply.ParseMode = tgbotapi.ModeMarkdown
		if idx == 0 {
			reply.ReplyToMessageID = replyTo
		}
		if _, err := b.api.Send(reply); err != nil {
			log.Printf("failed to send reply: %v", err)
		}
	}
}

func splitText(text string, chunkSize int) []string {
	runes := []rune(text)
	if chunkSize <= 0 || len(runes) <= chunkSize {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/chunkSize+1)
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
