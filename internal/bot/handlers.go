package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"keyshop-bot/internal/service"
	"keyshop-bot/internal/storage"
)

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	uid := msg.From.ID
	if err := b.shop.RegisterUser(uid, msg.From.UserName, msg.From.LanguageCode); err != nil {
		b.log.Error("register user", zap.Int64("user", uid), zap.Error(err))
	}
	lang := b.shop.UserLang(uid)

	if msg.IsCommand() {
		b.handleCommand(msg, lang)
		return
	}
	if sess := b.sess.get(uid); sess != nil {
		b.handleStep(msg, sess, lang)
		return
	}

	key, ok := matchButton(strings.TrimSpace(msg.Text))
	if !ok {
		_ = b.send(msg.Chat.ID, T(lang, "unknown"))
		return
	}
	switch key {
	case "btn.sellers":
		b.showSellers(msg.Chat.ID, lang)
	case "btn.reviews":
		b.showReviews(msg.Chat.ID, lang)
	case "btn.support":
		b.sess.begin(uid, stepSupportMessage)
		_ = b.send(msg.Chat.ID, T(lang, "support.prompt"))
	case "btn.settings":
		b.showSettings(msg.Chat.ID, msg.From, lang)
	case "btn.admin":
		if b.isAdmin(uid) {
			b.sendKB(msg.Chat.ID, T(lang, "admin.panel"), adminKeyboard(lang))
		}
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message, lang string) {
	switch msg.Command() {
	case "start":
		b.sendKB(msg.Chat.ID, T(lang, "welcome"), mainMenuKeyboard(lang, b.isAdmin(msg.From.ID)))
	case "confirm":
		b.cmdConfirm(msg, lang)
	case "reply":
		b.cmdReply(msg, lang)
	case "close":
		b.cmdClose(msg, lang)
	default:
		_ = b.send(msg.Chat.ID, T(lang, "unknown"))
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.From == nil {
		return
	}
	lang := b.shop.UserLang(cb.From.ID)
	data := cb.Data
	switch {
	case strings.HasPrefix(data, "buy_"):
		b.cbBuy(cb, lang, strings.TrimPrefix(data, "buy_"))
	case strings.HasPrefix(data, "qty_"):
		b.cbQuantity(cb, lang, strings.TrimPrefix(data, "qty_"))
	case strings.HasPrefix(data, "paid_"):
		b.cbPaid(cb, lang, strings.TrimPrefix(data, "paid_"))
	case data == "back_main":
		b.deleteMessage(cb)
		b.sendKB(chatOf(cb), T(lang, "menu.main"), mainMenuKeyboard(lang, b.isAdmin(cb.From.ID)))
		b.toast(cb, "")
	case data == "back_sellers":
		b.deleteMessage(cb)
		b.showSellers(chatOf(cb), lang)
		b.toast(cb, "")
	default:
		if !b.isAdmin(cb.From.ID) {
			b.toast(cb, "")
			return
		}
		b.handleAdminCallback(cb, lang, data)
	}
}

func (b *Bot) showSellers(chatID int64, lang string) {
	sellers := b.shop.Sellers()
	ids := sortedSellerIDs(sellers)
	if len(ids) == 0 {
		_ = b.send(chatID, T(lang, "sellers.none"))
		return
	}
	var sb strings.Builder
	sb.WriteString(T(lang, "sellers.header"))
	for _, id := range ids {
		s := sellers[id]
		sb.WriteString(T(lang, "sellers.entry", s.Name, fmtAmount(s.Price), len(s.Keys)))
	}
	b.sendKB(chatID, sb.String(), sellersKeyboard(lang, sellers))
}

func (b *Bot) showReviews(chatID int64, lang string) {
	reviews := b.shop.Reviews()
	if len(reviews) == 0 {
		_ = b.send(chatID, T(lang, "reviews.empty"))
		return
	}
	var sb strings.Builder
	sb.WriteString(T(lang, "reviews.header"))
	for _, r := range reviews {
		edited := ""
		if r.Edited != nil {
			edited = T(lang, "reviews.edited")
		}
		sb.WriteString(T(lang, "reviews.entry", r.ID, reviewAuthor(r), edited, r.Text, r.Date.Format("2006-01-02")))
	}
	_ = b.send(chatID, sb.String())
}

func (b *Bot) showSettings(chatID int64, from *tgbotapi.User, lang string) {
	purchases := 0
	if u, err := b.shop.User(from.ID); err == nil {
		purchases = len(u.Purchases)
	}
	_ = b.send(chatID, T(lang, "settings", from.ID, from.UserName, purchases))
}

// cbBuy shows the quantity picker for a seller.
func (b *Bot) cbBuy(cb *tgbotapi.CallbackQuery, lang, sellerID string) {
	if !service.ValidSellerID(sellerID) {
		b.toast(cb, T(lang, "buy.badseller"))
		return
	}
	seller, err := b.shop.GetSeller(sellerID)
	if err != nil {
		b.toast(cb, T(lang, "buy.notfound"))
		return
	}
	stock := b.shop.KeyCount(sellerID)
	if stock == 0 {
		b.toast(cb, T(lang, "buy.soldout"))
		return
	}
	maxQty := stock
	if maxQty > service.MaxPerOrder {
		maxQty = service.MaxPerOrder
	}
	b.deleteMessage(cb)
	b.sendKB(chatOf(cb), T(lang, "buy.prompt", seller.Name, fmtAmount(seller.Price), maxQty), quantityKeyboard(lang, sellerID, maxQty))
	b.toast(cb, "")
}

// cbQuantity parses "qty_<sellerID>_<n>" (the seller id may itself contain
// underscores, so split on the last one) and creates the pending payment.
func (b *Bot) cbQuantity(cb *tgbotapi.CallbackQuery, lang, payload string) {
	i := strings.LastIndex(payload, "_")
	if i <= 0 || i == len(payload)-1 {
		b.toast(cb, T(lang, "buy.badaction"))
		return
	}
	sellerID := payload[:i]
	qty, err := strconv.Atoi(payload[i+1:])
	if err != nil {
		b.toast(cb, T(lang, "buy.badaction"))
		return
	}
	if !service.ValidSellerID(sellerID) {
		b.toast(cb, T(lang, "buy.badseller"))
		return
	}
	seller, err := b.shop.GetSeller(sellerID)
	if err != nil {
		b.toast(cb, T(lang, "buy.notfound"))
		return
	}
	paymentID, amount, err := b.shop.Checkout(cb.From.ID, sellerID, qty)
	if err != nil {
		b.toast(cb, T(lang, "buy.badaction"))
		return
	}
	b.deleteMessage(cb)
	text := T(lang, "order.created", seller.Name, qty, fmtAmount(amount), b.wallet, paymentID)
	b.sendKB(chatOf(cb), text, paidKeyboard(lang, paymentID))
	b.toast(cb, "")
}

// cbPaid forwards a buyer's "I have paid" claim to the operator.
func (b *Bot) cbPaid(cb *tgbotapi.CallbackQuery, lang, paymentID string) {
	p, err := b.shop.Payment(paymentID)
	if err != nil {
		b.toast(cb, T(lang, "payment.notfound"))
		return
	}
	label := b.shop.UserLabel(cb.From.ID)
	b.notifyAdmin(T(b.adminLang(), "notify.payment", label, cb.From.ID, p.SellerID, p.Quantity, fmtAmount(p.Amount), paymentID, paymentID))
	if cb.Message != nil {
		b.edit(cb, cb.Message.Text+T(lang, "paid.wait"))
	}
	b.toast(cb, T(lang, "paid.ok"))
}

// handleStep advances the user's live form by one field. Validation failures
// re-prompt without advancing or clearing collected fields.
func (b *Bot) handleStep(msg *tgbotapi.Message, sess *session, lang string) {
	chatID := msg.Chat.ID
	text := msg.Text

	switch sess.step {
	case stepSupportMessage:
		b.sess.clear(msg.From.ID)
		id, err := b.shop.CreateTicket(msg.From.ID, text)
		if err != nil {
			b.log.Error("create ticket", zap.Error(err))
			return
		}
		b.notifyAdmin(T(b.adminLang(), "notify.ticket", id, b.shop.UserLabel(msg.From.ID), msg.From.ID, text, id, id))
		_ = b.send(chatID, T(lang, "support.accepted", id))

	case stepSellerID:
		id, err := b.shop.NewSellerID(text)
		switch err {
		case nil:
		case service.ErrSellerIDEmpty:
			_ = b.send(chatID, T(lang, "admin.addseller.badid.empty"))
			return
		case service.ErrSellerIDShort:
			_ = b.send(chatID, T(lang, "admin.addseller.badid.short"))
			return
		default:
			_ = b.send(chatID, T(lang, "admin.addseller.badid.exists"))
			return
		}
		sess.fields["seller_id"] = id
		sess.step = stepSellerName
		_ = b.send(chatID, T(lang, "admin.addseller.step2", id))

	case stepSellerName:
		sess.fields["name"] = text
		sess.step = stepSellerPrice
		_ = b.send(chatID, T(lang, "admin.addseller.step3"))

	case stepSellerPrice:
		price, err := service.ParsePrice(text)
		if err != nil {
			_ = b.send(chatID, T(lang, "admin.addseller.badprice"))
			return
		}
		b.sess.clear(msg.From.ID)
		if err := b.shop.AddSeller(sess.fields["seller_id"], sess.fields["name"], price); err != nil {
			_ = b.send(chatID, T(lang, "admin.addseller.badid.exists"))
			return
		}
		b.sendKB(chatID, T(lang, "admin.addseller.done", sess.fields["seller_id"], sess.fields["name"], fmtAmount(price)), adminKeyboard(lang))

	case stepReviewSubject:
		sess.fields["subject"] = text
		sess.step = stepReviewText
		_ = b.send(chatID, T(lang, "admin.addreview.step2"))

	case stepReviewText:
		b.sess.clear(msg.From.ID)
		userID, label := b.shop.ResolveReviewSubject(sess.fields["subject"])
		id, err := b.shop.AddReview(userID, text, label)
		if err != nil {
			b.log.Error("add review", zap.Error(err))
			return
		}
		b.sendKB(chatID, T(lang, "admin.addreview.done", id), reviewsAdminKeyboard(lang))

	case stepReviewEditText:
		b.sess.clear(msg.From.ID)
		id, _ := strconv.Atoi(sess.fields["review_id"])
		if err := b.shop.EditReview(id, text); err != nil {
			_ = b.send(chatID, T(lang, "admin.editreview.fail"))
			return
		}
		b.sendKB(chatID, T(lang, "admin.editreview.done", id), reviewsAdminKeyboard(lang))

	case stepGenCount:
		count, err := service.ParseKeyCount(text)
		if err != nil {
			_ = b.send(chatID, T(lang, "admin.genkeys.badcount"))
			return
		}
		b.sess.clear(msg.From.ID)
		keys, err := b.shop.GenerateKeys(sess.fields["seller_id"], count)
		if err != nil {
			if err == storage.ErrNotFound {
				_ = b.send(chatID, T(lang, "buy.notfound"))
			} else {
				b.log.Error("generate keys", zap.Error(err))
			}
			return
		}
		sample := keys
		if len(sample) > 3 {
			sample = sample[:3]
		}
		b.sendKB(chatID, T(lang, "admin.genkeys.done", count, strings.Join(sample, "\n")), adminKeyboard(lang))
	}
}

// chatOf targets the chat a callback came from, falling back to the private
// chat with its sender.
func chatOf(cb *tgbotapi.CallbackQuery) int64 {
	if cb.Message != nil && cb.Message.Chat != nil {
		return cb.Message.Chat.ID
	}
	return cb.From.ID
}
