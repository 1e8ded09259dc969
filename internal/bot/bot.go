package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"keyshop-bot/internal/service"
)

// Bot routes Telegram updates to the shop. GetUpdatesChan delivers updates on
// one channel consumed by Run sequentially, so handlers never overlap and
// each user's messages are processed in arrival order.
type Bot struct {
	api     *tgbotapi.BotAPI
	shop    *service.Shop
	adminID int64
	wallet  string
	log     *zap.Logger
	sess    *sessions
}

func New(api *tgbotapi.BotAPI, shop *service.Shop, adminID int64, wallet string, log *zap.Logger) *Bot {
	return &Bot{
		api:     api,
		shop:    shop,
		adminID: adminID,
		wallet:  wallet,
		log:     log,
		sess:    newSessions(),
	}
}

// Run blocks on the long-poll loop until the updates channel closes.
func (b *Bot) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	for update := range b.api.GetUpdatesChan(u) {
		switch {
		case update.Message != nil:
			b.handleMessage(update.Message)
		case update.CallbackQuery != nil:
			b.handleCallback(update.CallbackQuery)
		}
	}
}

func (b *Bot) isAdmin(userID int64) bool { return userID == b.adminID }

// send delivers plain text; failures are logged, not propagated — every
// outbound message is terminal for its operation.
func (b *Bot) send(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		b.log.Warn("send failed", zap.Int64("chat", chatID), zap.Error(err))
	}
	return err
}

func (b *Bot) sendKB(chatID int64, text string, kb any) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send failed", zap.Int64("chat", chatID), zap.Error(err))
	}
}

// edit rewrites the message a callback came from, keeping the admin panel a
// single message the way the original navigates.
func (b *Bot) edit(cb *tgbotapi.CallbackQuery, text string) {
	if cb.Message == nil {
		return
	}
	msg := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("edit failed", zap.Error(err))
	}
}

func (b *Bot) editKB(cb *tgbotapi.CallbackQuery, text string, kb tgbotapi.InlineKeyboardMarkup) {
	if cb.Message == nil {
		return
	}
	msg := tgbotapi.NewEditMessageTextAndMarkup(cb.Message.Chat.ID, cb.Message.MessageID, text, kb)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("edit failed", zap.Error(err))
	}
}

func (b *Bot) deleteMessage(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(cb.Message.Chat.ID, cb.Message.MessageID)); err != nil {
		b.log.Debug("delete failed", zap.Error(err))
	}
}

// toast answers the callback query with a short popup.
func (b *Bot) toast(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		b.log.Debug("callback answer failed", zap.Error(err))
	}
}

// notifyAdmin copies events needing human action to the operator chat.
func (b *Bot) notifyAdmin(text string) {
	if b.adminID == 0 {
		return
	}
	_ = b.send(b.adminID, text)
}

func (b *Bot) adminLang() string { return b.shop.UserLang(b.adminID) }

// fmtAmount trims trailing zeros so $2 and $1.5 render the way a human would
// write them.
func fmtAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
