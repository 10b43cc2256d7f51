// Package notify pushes operational alerts to the farm admin chat.
// Alerts are best-effort: a failed send is logged and never fails the
// command that triggered it.
package notify

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier interface {
	MortalityRegistered(batchName string, deaths int, sex string, population int)
	LowProductStock(productName string, stock float64, unit string)
}

type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

func NewTelegram(token string, adminChatID int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Telegram{api: api, chatID: adminChatID, log: log}, nil
}

func (t *Telegram) MortalityRegistered(batchName string, deaths int, sex string, population int) {
	t.send(fmt.Sprintf("Batch %q: %d %s birds died, population now %d", batchName, deaths, sex, population))
}

func (t *Telegram) LowProductStock(productName string, stock float64, unit string) {
	t.send(fmt.Sprintf("Low stock: %s down to %.3f %s", productName, stock, unit))
}

func (t *Telegram) send(text string) {
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		t.log.Error("notify send failed", "err", err)
	}
}
