package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// canEditWords allows everyone when no admin is configured.
func (b *Bot) canEditWords(user *tgbotapi.User) bool {
	return b.cfg.SuperAdminID == 0 || (user != nil && user.ID == b.cfg.SuperAdminID)
}

func (b *Bot) handleWordsCommand(chatID int64, lang string) {
	words := b.bank.List()
	if len(words) == 0 {
		b.sendMessage(chatID, b.localizer.Get(lang, "words_empty"), true)
		return
	}

	var sb strings.Builder
	sb.WriteString(b.localizer.Format(lang, "words_title", "count", strconv.Itoa(len(words))))
	for i, w := range words {
		sb.WriteString(b.localizer.Format(lang, "words_entry", "index", strconv.Itoa(i+1), "word", w))
	}
	b.sendMessage(chatID, sb.String(), true)
}

func (b *Bot) handleAddWordCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	lang := b.getUserLang(message.From)
	if !b.canEditWords(message.From) {
		b.sendMessage(chatID, b.localizer.Get(lang, "admin_only"), true)
		return
	}

	args := message.CommandArguments()
	if strings.TrimSpace(args) == "" {
		b.sendMessage(chatID, b.localizer.Get(lang, "addword_usage"), true)
		return
	}

	word, _, err := b.bank.Add(args)
	if err != nil {
		b.sendError(chatID, lang, err)
		return
	}
	b.logger.Info("word added", zap.String("word", word), zap.Int64("by", message.From.ID))
	b.sendMessage(chatID, b.localizer.Format(lang, "word_added", "word", word), true)
}

func (b *Bot) handleEditWordCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	lang := b.getUserLang(message.From)
	if !b.canEditWords(message.From) {
		b.sendMessage(chatID, b.localizer.Get(lang, "admin_only"), true)
		return
	}

	args := strings.SplitN(strings.TrimSpace(message.CommandArguments()), " ", 2)
	if len(args) != 2 {
		b.sendMessage(chatID, b.localizer.Get(lang, "editword_usage"), true)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		b.sendMessage(chatID, b.localizer.Get(lang, "editword_usage"), true)
		return
	}

	word, err := b.bank.Edit(n-1, args[1])
	if err != nil {
		b.sendError(chatID, lang, err)
		return
	}
	b.logger.Info("word edited", zap.Int("index", n-1), zap.String("word", word), zap.Int64("by", message.From.ID))
	b.sendMessage(chatID, b.localizer.Format(lang, "word_edited", "index", strconv.Itoa(n), "word", word), true)
}

func (b *Bot) handleDeleteWordCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	lang := b.getUserLang(message.From)
	if !b.canEditWords(message.From) {
		b.sendMessage(chatID, b.localizer.Get(lang, "admin_only"), true)
		return
	}

	n, err := strconv.Atoi(strings.TrimSpace(message.CommandArguments()))
	if err != nil {
		b.sendMessage(chatID, b.localizer.Get(lang, "deleteword_usage"), true)
		return
	}

	word, err := b.bank.Delete(n - 1)
	if err != nil {
		b.sendError(chatID, lang, err)
		return
	}
	b.logger.Info("word deleted", zap.String("word", word), zap.Int64("by", message.From.ID))
	b.sendMessage(chatID, b.localizer.Format(lang, "word_deleted", "word", word), true)
}
