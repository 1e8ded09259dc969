package bot

import (
	"sort"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"keyshop-bot/internal/domain"
	"keyshop-bot/internal/service"
)

func mainMenuKeyboard(lang string, isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		{tgbotapi.NewKeyboardButton(T(lang, "btn.sellers"))},
		{
			tgbotapi.NewKeyboardButton(T(lang, "btn.reviews")),
			tgbotapi.NewKeyboardButton(T(lang, "btn.support")),
		},
		{tgbotapi.NewKeyboardButton(T(lang, "btn.settings"))},
	}
	if isAdmin {
		rows = append(rows, []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(T(lang, "btn.admin"))})
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func sortedSellerIDs(sellers map[string]domain.Seller) []string {
	ids := make([]string, 0, len(sellers))
	for id := range sellers {
		if service.ValidSellerID(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func sellersKeyboard(lang string, sellers map[string]domain.Seller) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, id := range sortedSellerIDs(sellers) {
		s := sellers[id]
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(T(lang, "sellers.button", s.Name, fmtAmount(s.Price)), "buy_"+id),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(T(lang, "btn.back"), "back_main"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// quantityKeyboard offers 1..maxQty in rows of five.
func quantityKeyboard(lang, sellerID string, maxQty int) tgbotapi.InlineKeyboardMarkup {
	if maxQty > service.MaxPerOrder {
		maxQty = service.MaxPerOrder
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i := 1; i <= maxQty; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(i), "qty_"+sellerID+"_"+strconv.Itoa(i)))
		if len(row) == 5 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(T(lang, "btn.back"), "back_sellers"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func paidKeyboard(lang, paymentID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(T(lang, "btn.paid"), "paid_"+paymentID),
		),
	)
}

func adminKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	row := func(key, action string) []tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(T(lang, key), action))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row("btn.admin.stats", "admin_stats"),
		row("btn.admin.addsel", "admin_add_seller"),
		row("btn.admin.delsel", "admin_del_seller"),
		row("btn.admin.reviews", "admin_reviews"),
		row("btn.admin.tickets", "admin_tickets"),
		row("btn.admin.genkeys", "admin_gen_keys"),
		row("btn.admin.confirm", "admin_confirm"),
		row("btn.back", "back_main"),
	)
}

func reviewsAdminKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	row := func(key, action string) []tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(T(lang, key), action))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row("btn.review.add", "admin_add_review"),
		row("btn.review.edit", "admin_edit_review"),
		row("btn.review.del", "admin_del_review"),
		row("btn.back.admin", "admin_panel"),
	)
}

// pickSellerKeyboard lists sellers as buttons with a common action prefix,
// used for deletion (delsel_) and key generation (gen_) menus.
func pickSellerKeyboard(lang, prefix string, sellers map[string]domain.Seller, counts func(string) int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, id := range sortedSellerIDs(sellers) {
		s := sellers[id]
		label := "🗑️ " + s.Name
		if counts != nil {
			label = T(lang, "admin.genkeys.button", s.Name, counts(id))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, prefix+id),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(T(lang, "btn.cancel"), "admin_panel"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// pickReviewKeyboard lists up to the last 10 reviews for edit/delete menus.
func pickReviewKeyboard(lang, prefix string, reviews []domain.Review) tgbotapi.InlineKeyboardMarkup {
	if len(reviews) > 10 {
		reviews = reviews[len(reviews)-10:]
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, r := range reviews {
		short := r.Text
		if len([]rune(short)) > 30 {
			short = string([]rune(short)[:30]) + "..."
		}
		label := "#" + strconv.Itoa(r.ID) + " " + reviewAuthor(r) + ": " + short
		if prefix == "delrev_" {
			label = "🗑️ #" + strconv.Itoa(r.ID) + " " + reviewAuthor(r)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, prefix+strconv.Itoa(r.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(T(lang, "btn.back"), "admin_reviews"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func reviewAuthor(r domain.Review) string {
	if r.Username != "" {
		return r.Username
	}
	return "User" + strconv.FormatInt(r.UserID, 10)
}
