package notify

import (
	"fmt"
	"strconv"

	"jm_store_backend/internal/models"
	"jm_store_backend/pkg/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RegistrationNotifier is told about newly created client registrations.
// Delivery is best-effort: a failed notification never fails the registration.
type RegistrationNotifier interface {
	RegistrationCreated(client *models.Client)
}

// NoopNotifier discards all notifications. Used when no bot is configured.
type NoopNotifier struct{}

func (NoopNotifier) RegistrationCreated(*models.Client) {}

// TelegramNotifier posts new VIP registrations to a Telegram chat so the shop
// owner can follow up on WhatsApp with the access code.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier builds a notifier from a bot token and target chat ID.
func NewTelegramNotifier(token, chatID string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat ID %q: %w", chatID, err)
	}
	utils.LogInfo("Telegram notifier ready", map[string]interface{}{"bot": bot.Self.UserName})
	return &TelegramNotifier{bot: bot, chatID: id}, nil
}

func (n *TelegramNotifier) RegistrationCreated(client *models.Client) {
	text := fmt.Sprintf("Nova cliente VIP: %s %s\nWhatsApp: %s\nSenha de acesso: %s",
		client.FirstName, client.LastName, client.WhatsApp, client.AccessCode)
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		utils.LogError(err, "TelegramNotifier: failed to send registration notice")
	}
}
