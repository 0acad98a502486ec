package bot

import (
	"errors"

	"hangman-duel-bot/internal/game"
	"hangman-duel-bot/internal/wordbank"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	message := update.Message
	if message == nil || message.From == nil {
		return
	}

	b.logger.Debug("received message",
		zap.String("from", message.From.UserName),
		zap.Int64("chat_id", message.Chat.ID),
		zap.String("chat_type", message.Chat.Type),
		zap.String("text", message.Text),
	)

	if message.IsCommand() {
		b.handleCommand(message)
		return
	}

	// A bare letter is a guess while a round is running in this chat. Any
	// other chatter is ignored.
	state, ok := b.chats[message.Chat.ID]
	if !ok || state.session.Status() != game.StatusInProgress {
		return
	}
	if _, err := game.NormalizeLetter(message.Text); err != nil {
		return
	}
	b.handleGuess(message.Chat.ID, b.getUserLang(message.From), message.Text, "")
}

func (b *Bot) sendMessage(chatID int64, text string, useHTML bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if useHTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	_, err := b.api.Send(msg)
	if err != nil {
		b.logger.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return err
}

func (b *Bot) sendMessageAndGet(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	sent, err := b.api.Send(msg)
	if err != nil {
		b.logger.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return sent, err
}

func (b *Bot) answerCallback(queryID string, text string, showAlert bool) {
	callback := tgbotapi.NewCallback(queryID, text)
	callback.ShowAlert = showAlert
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Warn("failed to answer callback", zap.Error(err))
	}
}

func (b *Bot) getUserLang(user *tgbotapi.User) string {
	if user != nil && user.LanguageCode == "id" {
		return "id"
	}
	return "en"
}

// errorKey maps a core error to its message catalog key.
func errorKey(err error) string {
	switch {
	case errors.Is(err, wordbank.ErrEmptyWord):
		return "err_empty_word"
	case errors.Is(err, wordbank.ErrInvalidCharacters):
		return "err_invalid_characters"
	case errors.Is(err, wordbank.ErrDuplicateWord):
		return "err_duplicate_word"
	case errors.Is(err, wordbank.ErrIndexOutOfRange):
		return "err_index_out_of_range"
	case errors.Is(err, wordbank.ErrEmptyBank):
		return "err_empty_bank"
	case errors.Is(err, game.ErrEmptyName):
		return "err_empty_name"
	case errors.Is(err, game.ErrDuplicateName):
		return "err_duplicate_name"
	case errors.Is(err, game.ErrInvalidLetter):
		return "err_invalid_letter"
	case errors.Is(err, game.ErrNoMatch):
		return "err_no_match"
	default:
		return "err_internal"
	}
}

func (b *Bot) sendError(chatID int64, lang string, err error) {
	key := errorKey(err)
	if key == "err_internal" {
		b.logger.Error("unexpected error", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	b.sendMessage(chatID, b.localizer.Get(lang, key), true)
}
