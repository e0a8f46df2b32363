package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/recipematch/pkg/logger"
	"github.com/korjavin/recipematch/pkg/models"
)

// Callback data prefixes routed by Start's callback dispatch.
const (
	CallbackRecipePrefix  = "recipe:"
	CallbackAnalyzePrefix = "analyze:"
)

// matchKeyboardRows caps the inline keyboard attached to match results;
// Telegram renders long keyboards poorly.
const matchKeyboardRows = 5

// Bot represents a Telegram bot instance
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *logger.Logger
}

// HandlerFunc is a function that handles a Telegram update
type HandlerFunc func(update tgbotapi.Update)

// CommandHandler is a function that handles a Telegram command
type CommandHandler func(message *tgbotapi.Message)

// CallbackHandler is a function that handles a Telegram callback query
type CallbackHandler func(callback *tgbotapi.CallbackQuery)

// New creates a new Telegram bot instance
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot := &Bot{
		api:    api,
		logger: logger.New("telegram"),
	}

	bot.logger.Info("Telegram bot created: @%s", api.Self.UserName)
	return bot, nil
}

// Start starts the bot and listens for updates. It blocks until the
// updates channel closes.
func (b *Bot) Start(commandHandlers map[string]CommandHandler, callbackHandlers map[string]CallbackHandler, defaultHandler HandlerFunc) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		var chatID int64
		if update.Message != nil {
			chatID = update.Message.Chat.ID
		} else if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
			chatID = update.CallbackQuery.Message.Chat.ID
		}

		log := b.logger
		if chatID != 0 {
			log = logger.New(fmt.Sprintf("%d", chatID))
		}

		// Handle commands
		if update.Message != nil && update.Message.IsCommand() {
			command := update.Message.Command()
			if handler, ok := commandHandlers[command]; ok {
				log.Info("Handling command: %s from user %s", command, update.Message.From.UserName)
				handler(update.Message)
				continue
			}
		}

		// Handle callback queries
		if update.CallbackQuery != nil {
			data := update.CallbackQuery.Data
			for prefix, handler := range callbackHandlers {
				if strings.HasPrefix(data, prefix) {
					log.Info("Handling callback: %s from user %s", data, update.CallbackQuery.From.UserName)
					handler(update.CallbackQuery)
					break
				}
			}
			continue
		}

		// Use default handler for other updates
		if defaultHandler != nil {
			defaultHandler(update)
		}
	}

	return nil
}

// StopReceivingUpdates closes the updates channel, unblocking Start.
func (b *Bot) StopReceivingUpdates() {
	b.api.StopReceivingUpdates()
}

// SendMessage sends a text message to a chat
func (b *Bot) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	return b.api.Send(msg)
}

// SendMessageWithKeyboard sends a text message with an inline keyboard
func (b *Bot) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return b.api.Send(msg)
}

// AnswerCallbackQuery answers a callback query
func (b *Bot) AnswerCallbackQuery(callbackID string, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	_, err := b.api.Request(callback)
	return err
}

// EditMessage edits a message
func (b *Bot) EditMessage(chatID int64, messageID int, text string) (tgbotapi.Message, error) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	return b.api.Send(edit)
}

// Send sends a Chattable to Telegram
func (b *Bot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return b.api.Send(c)
}

// MatchKeyboard builds the inline keyboard shown under ranked match
// results: one row per recipe with a recipe-card button and an
// analysis button, capped to the top rows.
func MatchKeyboard(matches []models.RecipeMatch) tgbotapi.InlineKeyboardMarkup {
	if len(matches) > matchKeyboardRows {
		matches = matches[:matchKeyboardRows]
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(matches))
	for _, match := range matches {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 "+match.Title, CallbackRecipePrefix+match.RecipeID),
			tgbotapi.NewInlineKeyboardButtonData("📊 Analyze", CallbackAnalyzePrefix+match.RecipeID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
