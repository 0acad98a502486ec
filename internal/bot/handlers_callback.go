package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.answerCallback(query.ID, "", false)
		return
	}

	chatID := query.Message.Chat.ID
	lang := b.getUserLang(query.From)
	data := query.Data

	switch {
	case strings.HasPrefix(data, callbackGuessPrefix):
		b.handleGuess(chatID, lang, strings.TrimPrefix(data, callbackGuessPrefix), query.ID)
	case data == callbackNextRound:
		b.answerCallback(query.ID, "", false)
		b.handleNextRound(chatID, lang)
	case data == callbackEndMatch:
		b.answerCallback(query.ID, "", false)
		b.handleEndMatch(chatID, lang)
	default:
		b.answerCallback(query.ID, "", false)
	}
}
