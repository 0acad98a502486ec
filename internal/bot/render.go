package bot

import (
	"html"
	"strconv"
	"strings"

	"hangman-duel-bot/internal/game"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	lettersPerRow = 7
	alphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	callbackGuessPrefix = "guess:"
	callbackNextRound   = "next"
	callbackEndMatch    = "end"
)

// gallows holds one picture per wrong guess. Parts appear in the order
// head, left arm, right arm, body, left leg, right leg.
var gallows = [game.MaxWrong + 1]string{
	`  +---+
  |   |
      |
      |
      |
=========`,
	`  +---+
  |   |
  O   |
      |
      |
=========`,
	`  +---+
  |   |
  O   |
 /    |
      |
=========`,
	`  +---+
  |   |
  O   |
 / \  |
      |
=========`,
	`  +---+
  |   |
  O   |
 /|\  |
      |
=========`,
	`  +---+
  |   |
  O   |
 /|\  |
 /    |
=========`,
	`  +---+
  |   |
  O   |
 /|\  |
 / \  |
=========`,
}

// gallowsFor returns the picture for a round with the given lives left.
func gallowsFor(remainingLives int) string {
	misses := game.MaxWrong - remainingLives
	if misses < 0 {
		misses = 0
	}
	if misses > game.MaxWrong {
		misses = game.MaxWrong
	}
	return gallows[misses]
}

func (b *Bot) roundText(lang string, r game.Report) string {
	var sb strings.Builder

	sb.WriteString(b.localizer.Format(lang, "round_header",
		"round", strconv.Itoa(r.Round),
		"player", html.EscapeString(r.CurrentPlayerName()),
	))
	sb.WriteString("\n\n<pre>")
	sb.WriteString(gallowsFor(r.RemainingLives))
	sb.WriteString("</pre>\n<code>")
	sb.WriteString(r.MaskedWord)
	sb.WriteString("</code>\n\n")

	wrong := b.localizer.Get(lang, "round_wrong_none")
	if len(r.WrongLetters) > 0 {
		wrong = strings.Join(r.WrongLetters, ", ")
	}
	sb.WriteString(b.localizer.Format(lang, "round_wrong", "letters", wrong))
	sb.WriteString("\n")
	sb.WriteString(b.localizer.Format(lang, "round_lives", "lives", strconv.Itoa(r.RemainingLives)))

	switch r.Status {
	case game.StatusWon:
		sb.WriteString("\n\n")
		sb.WriteString(b.localizer.Format(lang, "round_won",
			"name", html.EscapeString(r.CurrentPlayerName()), "word", r.Word))
	case game.StatusLost:
		sb.WriteString("\n\n")
		sb.WriteString(b.localizer.Format(lang, "round_lost",
			"name", html.EscapeString(r.CurrentPlayerName()), "word", r.Word))
	}

	if r.Status.Terminal() {
		sb.WriteString("\n\n")
		sb.WriteString(b.scoreboardText(lang, r))
	}
	return sb.String()
}

func (b *Bot) scoreboardText(lang string, r game.Report) string {
	var sb strings.Builder
	sb.WriteString(b.localizer.Get(lang, "scoreboard_title"))
	for i, p := range r.Players {
		marker := "▫️"
		if i+1 == r.CurrentPlayer {
			marker = "👉"
		}
		sb.WriteString(b.localizer.Format(lang, "scoreboard_entry",
			"marker", marker,
			"name", html.EscapeString(p.Name),
			"points", strconv.Itoa(p.Score),
		))
	}
	return sb.String()
}

// roundKeyboard offers the letters not tried yet while the round runs, and
// next/end buttons once it is over.
func (b *Bot) roundKeyboard(lang string, r game.Report) *tgbotapi.InlineKeyboardMarkup {
	switch {
	case r.Status == game.StatusInProgress:
		guessed := make(map[string]bool, len(r.GuessedLetters))
		for _, l := range r.GuessedLetters {
			guessed[l] = true
		}

		var rows [][]tgbotapi.InlineKeyboardButton
		var row []tgbotapi.InlineKeyboardButton
		for _, c := range alphabet {
			letter := string(c)
			if guessed[letter] {
				continue
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(letter, callbackGuessPrefix+letter))
			if len(row) == lettersPerRow {
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
		}
		if len(rows) == 0 {
			return nil
		}
		markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
		return &markup

	case r.Status.Terminal():
		markup := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(b.localizer.Get(lang, "button_next_round"), callbackNextRound),
				tgbotapi.NewInlineKeyboardButtonData(b.localizer.Get(lang, "button_end_match"), callbackEndMatch),
			),
		)
		return &markup
	}
	return nil
}
