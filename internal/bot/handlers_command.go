package bot

import (
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	lang := b.getUserLang(message.From)

	switch message.Command() {
	case "start":
		b.handleStartCommand(message)
	case "help":
		b.sendMessage(chatID, b.localizer.Get(lang, "help_text"), true)
	case "newmatch":
		b.handleNewMatchCommand(message)
	case "next":
		b.handleNextRound(chatID, lang)
	case "score":
		b.handleScoreCommand(chatID, lang)
	case "endmatch":
		b.handleEndMatch(chatID, lang)
	case "words":
		b.handleWordsCommand(chatID, lang)
	case "addword":
		b.handleAddWordCommand(message)
	case "editword":
		b.handleEditWordCommand(message)
	case "deleteword":
		b.handleDeleteWordCommand(message)
	default:
	}
}

func (b *Bot) handleStartCommand(message *tgbotapi.Message) {
	lang := b.getUserLang(message.From)
	text := b.localizer.Format(lang, "start_welcome", "name", html.EscapeString(message.From.FirstName))
	b.sendMessage(message.Chat.ID, text, true)
}
