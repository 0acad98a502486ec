package bot

import (
	"errors"
	"strings"

	"hangman-duel-bot/internal/game"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleNewMatchCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	lang := b.getUserLang(message.From)

	args := strings.Fields(message.CommandArguments())
	if len(args) != 2 {
		b.sendMessage(chatID, b.localizer.Get(lang, "newmatch_usage"), true)
		return
	}

	session := game.NewSession(b.bank, b.logger)
	report, err := session.StartMatch(args[0], args[1])
	if errors.Is(err, game.ErrEmptyName) || errors.Is(err, game.ErrDuplicateName) {
		b.sendError(chatID, lang, err)
		return
	}

	// A new match replaces whatever was running in this chat.
	state := &chatState{session: session}
	b.chats[chatID] = state
	b.logger.Info("match created", zap.Int64("chat_id", chatID), zap.String("match_id", session.ID()))

	if err != nil {
		b.sendError(chatID, lang, err)
		return
	}
	b.showRound(chatID, lang, state, report)
}

func (b *Bot) handleNextRound(chatID int64, lang string) {
	state, ok := b.chats[chatID]
	if !ok {
		b.sendMessage(chatID, b.localizer.Get(lang, "no_match"), true)
		return
	}

	report, err := state.session.StartRound()
	if err != nil {
		b.sendError(chatID, lang, err)
		return
	}
	b.showRound(chatID, lang, state, report)
}

// handleGuess applies a letter from a text message or, when callbackID is
// set, from a keyboard button.
func (b *Bot) handleGuess(chatID int64, lang, letter, callbackID string) {
	state, ok := b.chats[chatID]
	if !ok {
		if callbackID != "" {
			b.answerCallback(callbackID, b.localizer.Get(lang, "no_match"), true)
		}
		return
	}

	report, applied, err := state.session.Guess(letter)
	if err != nil {
		if callbackID != "" {
			b.answerCallback(callbackID, b.localizer.Get(lang, errorKey(err)), true)
			return
		}
		b.sendError(chatID, lang, err)
		return
	}

	if !applied {
		if callbackID != "" {
			key := "callback_already_guessed"
			if report.Status != game.StatusInProgress {
				key = "callback_round_over"
			}
			b.answerCallback(callbackID, b.localizer.Get(lang, key), false)
		}
		return
	}

	if callbackID != "" {
		b.answerCallback(callbackID, "", false)
	}
	b.refreshRound(chatID, lang, state, report)
}

func (b *Bot) handleScoreCommand(chatID int64, lang string) {
	state, ok := b.chats[chatID]
	if !ok {
		b.sendMessage(chatID, b.localizer.Get(lang, "no_match"), true)
		return
	}
	b.sendMessage(chatID, b.scoreboardText(lang, state.session.Report()), true)
}

func (b *Bot) handleEndMatch(chatID int64, lang string) {
	state, ok := b.chats[chatID]
	if !ok {
		b.sendMessage(chatID, b.localizer.Get(lang, "no_match"), true)
		return
	}
	delete(b.chats, chatID)

	report := state.session.Report()
	b.logger.Info("match ended",
		zap.Int64("chat_id", chatID),
		zap.String("match_id", report.MatchID),
		zap.Int("rounds", report.Round),
	)
	b.sendMessage(chatID, b.localizer.Get(lang, "match_ended")+b.scoreboardText(lang, report), true)
}

// showRound posts a fresh round message and remembers it for later edits.
func (b *Bot) showRound(chatID int64, lang string, state *chatState, report game.Report) {
	sent, err := b.sendMessageAndGet(chatID, b.roundText(lang, report), b.roundKeyboard(lang, report))
	if err != nil {
		return
	}
	state.messageID = sent.MessageID
}

// refreshRound edits the round message in place, falling back to a new
// message when there is nothing to edit.
func (b *Bot) refreshRound(chatID int64, lang string, state *chatState, report game.Report) {
	if state.messageID == 0 {
		b.showRound(chatID, lang, state, report)
		return
	}

	text := b.roundText(lang, report)
	var edit tgbotapi.EditMessageTextConfig
	if markup := b.roundKeyboard(lang, report); markup != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, state.messageID, text, *markup)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, state.messageID, text)
	}
	edit.ParseMode = tgbotapi.ModeHTML

	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("failed to edit round message", zap.Int64("chat_id", chatID), zap.Error(err))
		b.showRound(chatID, lang, state, report)
	}
}
