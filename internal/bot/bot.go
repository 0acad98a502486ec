package bot

import (
	"context"
	"fmt"

	"hangman-duel-bot/internal/config"
	"hangman-duel-bot/internal/game"
	"hangman-duel-bot/internal/i18n"
	"hangman-duel-bot/internal/wordbank"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// telegramAPI is the part of *tgbotapi.BotAPI the bot talks to.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// chatState is the match running in one chat. messageID points at the
// message showing the current round so guesses can edit it in place.
type chatState struct {
	session   *game.Session
	messageID int
}

// Bot renders hangman matches in Telegram chats. Updates are handled one at
// a time on the goroutine running Start.
type Bot struct {
	api       telegramAPI
	cfg       *config.Config
	localizer *i18n.Localizer
	bank      *wordbank.Bank
	logger    *zap.Logger
	chats     map[int64]*chatState
}

func New(cfg *config.Config, localizer *i18n.Localizer, bank *wordbank.Bank, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("authorized on telegram", zap.String("account", api.Self.UserName))

	return newBot(api, cfg, localizer, bank, logger), nil
}

func newBot(api telegramAPI, cfg *config.Config, localizer *i18n.Localizer, bank *wordbank.Bank, logger *zap.Logger) *Bot {
	return &Bot{
		api:       api,
		cfg:       cfg,
		localizer: localizer,
		bank:      bank,
		logger:    logger.Named("bot"),
		chats:     make(map[int64]*chatState),
	}
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("stopped polling")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(update)
		}
	}
}
