package bot

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"keyshop-bot/internal/service"
	"keyshop-bot/internal/storage"
)

// handleAdminCallback serves the inline admin panel. The caller has already
// verified the operator identity.
func (b *Bot) handleAdminCallback(cb *tgbotapi.CallbackQuery, lang, data string) {
	switch {
	case data == "admin_panel":
		b.editKB(cb, T(lang, "admin.panel"), adminKeyboard(lang))
		b.toast(cb, "")
	case data == "admin_stats":
		b.adminStats(cb, lang)
	case data == "admin_add_seller":
		b.sess.begin(cb.From.ID, stepSellerID)
		b.edit(cb, T(lang, "admin.addseller.step1"))
		b.toast(cb, "")
	case data == "admin_del_seller":
		b.adminDelSellerMenu(cb, lang)
	case strings.HasPrefix(data, "delsel_"):
		b.adminDelSeller(cb, lang, strings.TrimPrefix(data, "delsel_"))
	case data == "admin_reviews":
		b.editKB(cb, T(lang, "admin.reviews.menu"), reviewsAdminKeyboard(lang))
		b.toast(cb, "")
	case data == "admin_add_review":
		b.sess.begin(cb.From.ID, stepReviewSubject)
		b.edit(cb, T(lang, "admin.addreview.step1"))
		b.toast(cb, "")
	case data == "admin_edit_review":
		b.adminPickReview(cb, lang, "edrev_", T(lang, "admin.editreview.pick"))
	case strings.HasPrefix(data, "edrev_"):
		b.adminEditReview(cb, lang, strings.TrimPrefix(data, "edrev_"))
	case data == "admin_del_review":
		b.adminPickReview(cb, lang, "delrev_", T(lang, "admin.delreview.pick"))
	case strings.HasPrefix(data, "delrev_"):
		b.adminDelReview(cb, lang, strings.TrimPrefix(data, "delrev_"))
	case data == "admin_tickets":
		b.adminTickets(cb, lang)
	case data == "admin_gen_keys":
		b.adminGenMenu(cb, lang)
	case strings.HasPrefix(data, "gen_"):
		b.adminGenCount(cb, lang, strings.TrimPrefix(data, "gen_"))
	case data == "admin_confirm":
		b.adminPendingPayments(cb, lang)
	default:
		b.toast(cb, T(lang, "buy.badaction"))
	}
}

func (b *Bot) adminStats(cb *tgbotapi.CallbackQuery, lang string) {
	st := b.shop.Stats()
	var sb strings.Builder
	sb.WriteString(T(lang, "admin.stats", st.Users, st.TotalKeys, st.OpenTickets))
	for _, s := range st.Sellers {
		sb.WriteString(T(lang, "admin.stats.seller", s.Name, s.Keys, fmtAmount(s.Price)))
	}
	b.editKB(cb, sb.String(), adminKeyboard(lang))
	b.toast(cb, "")
}

func (b *Bot) adminDelSellerMenu(cb *tgbotapi.CallbackQuery, lang string) {
	sellers := b.shop.Sellers()
	if len(sortedSellerIDs(sellers)) == 0 {
		b.toast(cb, T(lang, "admin.delseller.none"))
		return
	}
	b.editKB(cb, T(lang, "admin.delseller.pick"), pickSellerKeyboard(lang, "delsel_", sellers, nil))
	b.toast(cb, "")
}

func (b *Bot) adminDelSeller(cb *tgbotapi.CallbackQuery, lang, sellerID string) {
	if !service.ValidSellerID(sellerID) {
		b.toast(cb, T(lang, "buy.badseller"))
		return
	}
	seller, err := b.shop.GetSeller(sellerID)
	if err != nil {
		b.toast(cb, T(lang, "buy.notfound"))
		return
	}
	if err := b.shop.RemoveSeller(sellerID); err != nil {
		b.toast(cb, T(lang, "buy.notfound"))
		return
	}
	b.editKB(cb, T(lang, "admin.delseller.done", seller.Name), adminKeyboard(lang))
	b.toast(cb, "")
}

func (b *Bot) adminPickReview(cb *tgbotapi.CallbackQuery, lang, prefix, title string) {
	reviews := b.shop.Reviews()
	if len(reviews) == 0 {
		b.toast(cb, T(lang, "admin.review.none"))
		return
	}
	b.editKB(cb, title, pickReviewKeyboard(lang, prefix, reviews))
	b.toast(cb, "")
}

func (b *Bot) adminEditReview(cb *tgbotapi.CallbackQuery, lang, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		b.toast(cb, T(lang, "buy.badaction"))
		return
	}
	review, err := b.shop.ReviewByID(id)
	if err != nil {
		b.toast(cb, T(lang, "admin.review.notfound"))
		return
	}
	sess := b.sess.begin(cb.From.ID, stepReviewEditText)
	sess.fields["review_id"] = rawID
	b.edit(cb, T(lang, "admin.editreview.prompt", id, review.Text))
	b.toast(cb, "")
}

func (b *Bot) adminDelReview(cb *tgbotapi.CallbackQuery, lang, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		b.toast(cb, T(lang, "buy.badaction"))
		return
	}
	_ = b.shop.DeleteReview(id)
	b.editKB(cb, T(lang, "admin.delreview.done", id), reviewsAdminKeyboard(lang))
	b.toast(cb, "")
}

func (b *Bot) adminTickets(cb *tgbotapi.CallbackQuery, lang string) {
	tickets := b.shop.OpenTickets()
	if len(tickets) == 0 {
		b.editKB(cb, T(lang, "admin.tickets.none"), adminKeyboard(lang))
		b.toast(cb, "")
		return
	}
	ids := make([]int, 0, len(tickets))
	for id := range tickets {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var sb strings.Builder
	sb.WriteString(T(lang, "admin.tickets.header"))
	for _, id := range ids {
		t := tickets[id]
		preview := t.Message
		if len([]rune(preview)) > 50 {
			preview = string([]rune(preview)[:50]) + "..."
		}
		sb.WriteString(T(lang, "admin.tickets.entry", id, b.shop.UserLabel(t.UserID), preview))
	}
	sb.WriteString(T(lang, "admin.tickets.hint"))
	b.editKB(cb, sb.String(), adminKeyboard(lang))
	b.toast(cb, "")
}

func (b *Bot) adminGenMenu(cb *tgbotapi.CallbackQuery, lang string) {
	sellers := b.shop.Sellers()
	b.editKB(cb, T(lang, "admin.genkeys.pick"), pickSellerKeyboard(lang, "gen_", sellers, b.shop.KeyCount))
	b.toast(cb, "")
}

func (b *Bot) adminGenCount(cb *tgbotapi.CallbackQuery, lang, sellerID string) {
	if !service.ValidSellerID(sellerID) {
		b.toast(cb, T(lang, "buy.badseller"))
		return
	}
	sess := b.sess.begin(cb.From.ID, stepGenCount)
	sess.fields["seller_id"] = sellerID
	b.edit(cb, T(lang, "admin.genkeys.count"))
	b.toast(cb, "")
}

// adminPendingPayments lists up to five pending records with the confirm hint.
func (b *Bot) adminPendingPayments(cb *tgbotapi.CallbackQuery, lang string) {
	pending := b.shop.PendingPayments()
	if len(pending) == 0 {
		b.editKB(cb, T(lang, "admin.payments.none"), adminKeyboard(lang))
		b.toast(cb, "")
		return
	}
	ids := make([]string, 0, len(pending))
	for id := range pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) > 5 {
		ids = ids[:5]
	}
	var sb strings.Builder
	sb.WriteString(T(lang, "admin.payments.header"))
	for _, id := range ids {
		p := pending[id]
		sb.WriteString(T(lang, "admin.payments.entry", id, p.UserID, p.Quantity, fmtAmount(p.Amount)))
	}
	sb.WriteString(T(lang, "admin.payments.hint"))
	b.editKB(cb, sb.String(), adminKeyboard(lang))
	b.toast(cb, "")
}

// cmdConfirm runs the whole confirmation unit: stock check, issuance, status
// flip, purchase record, key delivery. Delivery failure shows the raw keys to
// the operator so they are not lost.
func (b *Bot) cmdConfirm(msg *tgbotapi.Message, lang string) {
	if !b.isAdmin(msg.From.ID) {
		return
	}
	args := strings.Fields(msg.Text)
	if len(args) < 2 {
		_ = b.send(msg.Chat.ID, T(lang, "cmd.confirm.usage"))
		return
	}
	res, err := b.shop.ConfirmPayment(args[1])
	if err != nil {
		var shortfall *service.InsufficientStockError
		switch {
		case errors.As(err, &shortfall):
			_ = b.send(msg.Chat.ID, T(lang, "cmd.confirm.shortage", shortfall.Need, shortfall.Have))
		case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrPaymentDone):
			_ = b.send(msg.Chat.ID, T(lang, "cmd.confirm.notfound"))
		case strings.Contains(err.Error(), "malformed seller id"):
			_ = b.send(msg.Chat.ID, T(lang, "cmd.confirm.badseller"))
		default:
			_ = b.send(msg.Chat.ID, T(lang, "cmd.confirm.issuefail"))
		}
		return
	}
	buyerLang := b.shop.UserLang(res.BuyerID)
	keysText := strings.Join(res.Keys, "\n")
	if err := b.send(res.BuyerID, T(buyerLang, "keys.message", len(res.Keys), keysText)); err != nil {
		_ = b.send(msg.Chat.ID, T(lang, "cmd.confirm.sendfail", err.Error(), keysText))
		return
	}
	_ = b.send(msg.Chat.ID, T(lang, "cmd.confirm.sent", res.BuyerID))
}

func (b *Bot) cmdReply(msg *tgbotapi.Message, lang string) {
	if !b.isAdmin(msg.From.ID) {
		return
	}
	args := strings.SplitN(msg.Text, " ", 3)
	if len(args) < 3 {
		_ = b.send(msg.Chat.ID, T(lang, "cmd.reply.usage"))
		return
	}
	ticketID, err := strconv.Atoi(args[1])
	if err != nil {
		_ = b.send(msg.Chat.ID, T(lang, "cmd.reply.usage"))
		return
	}
	ticket, err := b.shop.ReplyTicket(msg.From.ID, ticketID, args[2])
	if err != nil {
		_ = b.send(msg.Chat.ID, T(lang, "cmd.reply.notfound"))
		return
	}
	userLang := b.shop.UserLang(ticket.UserID)
	if err := b.send(ticket.UserID, T(userLang, "support.reply", ticketID, args[2])); err != nil {
		_ = b.send(msg.Chat.ID, T(lang, "cmd.reply.sendfail", err.Error()))
		return
	}
	_ = b.send(msg.Chat.ID, T(lang, "cmd.reply.sent", ticket.UserID))
}

func (b *Bot) cmdClose(msg *tgbotapi.Message, lang string) {
	if !b.isAdmin(msg.From.ID) {
		return
	}
	args := strings.Fields(msg.Text)
	if len(args) < 2 {
		_ = b.send(msg.Chat.ID, T(lang, "cmd.close.usage"))
		return
	}
	ticketID, err := strconv.Atoi(args[1])
	if err != nil {
		_ = b.send(msg.Chat.ID, T(lang, "cmd.close.usage"))
		return
	}
	if err := b.shop.CloseTicket(ticketID); err != nil {
		_ = b.send(msg.Chat.ID, T(lang, "cmd.close.notfound"))
		return
	}
	_ = b.send(msg.Chat.ID, T(lang, "cmd.close.done", ticketID))
}
