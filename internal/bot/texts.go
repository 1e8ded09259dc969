package bot

import "fmt"

// T renders a catalog string for a language tag. Unknown languages fall back
// to Russian, unknown keys render as the key itself so a miss is visible in
// chat instead of silently dropped.
func T(lang, key string, args ...any) string {
	table, ok := catalog[lang]
	if !ok {
		table = catalog["ru"]
	}
	format, ok := table[key]
	if !ok {
		if format, ok = catalog["ru"][key]; !ok {
			return key
		}
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// matchButton reports which reply-keyboard button a free-text message is, in
// any supported language.
func matchButton(text string) (string, bool) {
	for _, key := range []string{"btn.sellers", "btn.reviews", "btn.support", "btn.settings", "btn.admin"} {
		for _, table := range catalog {
			if table[key] == text {
				return key, true
			}
		}
	}
	return "", false
}

var catalog = map[string]map[string]string{
	"ru": {
		"btn.sellers":  "🛒 Продавцы",
		"btn.reviews":  "⭐ Отзывы",
		"btn.support":  "🆘 ТехПоддержка",
		"btn.settings": "⚙️ Настройки",
		"btn.admin":    "🔐 Админ панель",
		"btn.back":     "🔙 Назад",
		"btn.cancel":   "🔙 Отмена",
		"btn.back.admin": "🔙 Назад в админку",
		"btn.paid":     "✅ Я оплатил",

		"welcome": "👋 Добро пожаловать в P2E Keys Shop!\n\n" +
			"🔑 Здесь вы можете купить ключи для Play-to-Earn игр\n" +
			"💰 Оплата принимается в USDT (TRC20)\n\n" +
			"Выберите действие:",
		"menu.main": "Главное меню:",

		"sellers.header": "🛒 Выберите продавца:\n\n",
		"sellers.entry":  "🔹 %s\n   💵 Цена: $%s за штуку\n   📦 Ключей в наличии: %d\n\n",
		"sellers.none":   "❌ Нет доступных продавцов!",
		"sellers.button": "%s — $%s",

		"buy.prompt":    "🛒 %s\n💵 Цена: $%s за штуку\n\n❓ Сколько ключей хотите купить?\n📦 Доступно: %d шт.",
		"buy.soldout":   "❌ Ключи закончились!",
		"buy.badseller": "❌ Некорректный ID продавца!",
		"buy.notfound":  "❌ Продавец не найден!",
		"buy.badaction": "❌ Ошибка формата данных!",

		"order.created": "🛒 Заказ: %s\n📦 Количество: %d шт.\n💵 Сумма к оплате: $%s\n\n" +
			"📋 Реквизиты для оплаты USDT (TRC20):\n%s\n\n" +
			"🆔 ID платежа: %s\n\n" +
			"⚠️ После оплаты нажмите кнопку ниже.\nАдминистратор проверит платеж и вышлет ключи.",
		"paid.wait":        "\n\n⏳ Ожидаем подтверждения администратора...",
		"paid.ok":          "✅ Администратор уведомлен!",
		"payment.notfound": "❌ Платеж не найден!",

		"reviews.empty":  "⭐ Пока нет отзывов. Будьте первым!",
		"reviews.header": "⭐ Последние отзывы:\n\n",
		"reviews.entry":  "📝 #%d | 👤 %s%s\n💬 %s\n📅 %s\n\n",
		"reviews.edited": " (изменено)",

		"support.prompt":   "🆘 Техническая поддержка\n\nОпишите вашу проблему или вопрос одним сообщением.\nМы ответим вам как можно скорее!",
		"support.accepted": "✅ Ваше обращение #%d принято!\nМы ответим вам в ближайшее время.",
		"support.reply":    "📩 Ответ поддержки по тикету #%d:\n\n%s",

		"settings": "⚙️ Ваши настройки\n\n🆔 ID: %d\n👤 Username: @%s\n🛒 Покупок: %d\n\n💰 Кошелек для выплат: Не установлен",

		"keys.message": "✅ Оплата подтверждена!\n\n🔑 Ваши ключи (%d шт.):\n\n%s\n\n💾 Сохраните их! Покажите это сообщение при входе в игру.",

		"admin.panel": "🔐 Административная панель",
		"admin.stats": "📊 Статистика бота\n\n👥 Пользователей: %d\n🔑 Всего ключей: %d\n📩 Открытых тикетов: %d\n\n💰 Продавцы:\n",
		"admin.stats.seller": "  • %s: %d ключей ($%s)\n",

		"btn.admin.stats":    "📊 Статистика",
		"btn.admin.addsel":   "➕ Добавить продавца",
		"btn.admin.delsel":   "➖ Удалить продавца",
		"btn.admin.reviews":  "📝 Управление отзывами",
		"btn.admin.tickets":  "📩 Тикеты поддержки",
		"btn.admin.genkeys":  "🔑 Генерировать ключи",
		"btn.admin.confirm":  "✅ Подтвердить оплату",
		"btn.review.add":     "➕ Добавить отзыв",
		"btn.review.edit":    "✏️ Редактировать отзыв",
		"btn.review.del":     "🗑️ Удалить отзыв",

		"admin.addseller.step1": "➕ Добавление продавца\n\nШаг 1/3: Введите ID продавца (только латинские буквы, цифры и _)\nНапример: seller_vip, super_keys, megashop",
		"admin.addseller.badid.empty":  "❌ ID не может быть пустым! Используйте только латинские буквы и цифры.",
		"admin.addseller.badid.short":  "❌ ID слишком короткий (минимум 3 символа)!",
		"admin.addseller.badid.exists": "❌ Такой ID уже существует! Введите другой:",
		"admin.addseller.step2":        "✅ ID: %s\n\nШаг 2/3: Введите название продавца (с эмодзи):",
		"admin.addseller.step3":        "Шаг 3/3: Введите цену за ключ (число, например 2.5):",
		"admin.addseller.badprice":     "❌ Введите число больше 0! Попробуйте снова:",
		"admin.addseller.done":         "✅ Продавец добавлен!\n\n🆔 ID: %s\n🏷️ Название: %s\n💵 Цена: $%s",

		"admin.delseller.pick": "➖ Выберите продавца для удаления:",
		"admin.delseller.none": "Нет продавцов для удаления!",
		"admin.delseller.done": "✅ Продавец %s удален!",

		"admin.reviews.menu":      "📝 Управление отзывами\n\nВыберите действие:",
		"admin.addreview.step1":   "➕ Добавление отзыва\n\nШаг 1/2: Введите ID пользователя (или @username):",
		"admin.addreview.step2":   "Шаг 2/2: Введите текст отзыва:",
		"admin.addreview.done":    "✅ Отзыв #%d добавлен!",
		"admin.editreview.pick":   "✏️ Выберите отзыв для редактирования:",
		"admin.editreview.prompt": "✏️ Редактирование отзыва #%d\n\nТекущий текст:\n%s\n\nВведите новый текст:",
		"admin.editreview.done":   "✅ Отзыв #%d обновлен!",
		"admin.editreview.fail":   "❌ Ошибка при обновлении!",
		"admin.delreview.pick":    "🗑️ Выберите отзыв для удаления:",
		"admin.delreview.done":    "✅ Отзыв #%d удален!",
		"admin.review.none":       "Нет отзывов!",
		"admin.review.notfound":   "Отзыв не найден!",

		"admin.genkeys.pick":     "🔑 Выберите продавца для генерации ключей:",
		"admin.genkeys.count":    "🔢 Сколько ключей сгенерировать? (введите число от 1 до 100):",
		"admin.genkeys.badcount": "❌ Введите число от 1 до 100!",
		"admin.genkeys.done":     "✅ Сгенерировано %d ключей!\n\nПервые 3:\n%s\n...",
		"admin.genkeys.button":   "🔑 %s (%d шт.)",

		"admin.tickets.none":   "📩 Нет открытых тикетов.",
		"admin.tickets.header": "📩 Открытые тикеты:\n\n",
		"admin.tickets.entry":  "#%d | 👤 %s\n💬 %s\n\n",
		"admin.tickets.hint":   "\nДля ответа: /reply [ID] [текст]\nДля закрытия: /close [ID]",

		"admin.payments.none":   "✅ Нет ожидающих платежей.",
		"admin.payments.header": "⏳ Ожидают подтверждения:\n\n",
		"admin.payments.entry":  "🆔 %s\n   👤 %d | 📦 %d шт. | 💵 $%s\n\n",
		"admin.payments.hint":   "Для подтверждения отправьте:\n/confirm [PAYMENT_ID]",

		"notify.payment": "💰 Новая оплата!\n\n👤 Пользователь: %s\n🆔 ID: %d\n🛒 Продавец: %s\n📦 Количество: %d шт.\n💵 Сумма: $%s\n🆔 Платеж: %s\n\nДля подтверждения отправьте:\n/confirm %s",
		"notify.ticket":  "📩 Новый тикет #%d\n\n👤 От: %s\n🆔 User ID: %d\n\n💬 Сообщение:\n%s\n\nДля ответа: /reply %d [текст]\nДля закрытия: /close %d",

		"cmd.confirm.usage":    "Использование: /confirm [PAYMENT_ID]",
		"cmd.confirm.notfound": "❌ Платеж не найден или уже подтвержден!",
		"cmd.confirm.badseller": "❌ Некорректный ID продавца в платеже!",
		"cmd.confirm.shortage": "❌ Недостаточно ключей! Нужно %d, есть %d",
		"cmd.confirm.issuefail": "❌ Ошибка при выдаче ключей!",
		"cmd.confirm.sent":     "✅ Ключи отправлены пользователю %d",
		"cmd.confirm.sendfail": "⚠️ Ошибка отправки: %s\n\nКлючи:\n%s",

		"cmd.reply.usage":    "Использование: /reply [TICKET_ID] [текст]",
		"cmd.reply.notfound": "Тикет не найден!",
		"cmd.reply.sent":     "✅ Ответ отправлен пользователю %d",
		"cmd.reply.sendfail": "⚠️ Ошибка: %s",

		"cmd.close.usage":    "Использование: /close [TICKET_ID]",
		"cmd.close.notfound": "Тикет не найден!",
		"cmd.close.done":     "✅ Тикет #%d закрыт",

		"unknown": "ℹ️ Используйте меню или /start",
	},

	"en": {
		"btn.sellers":  "🛒 Sellers",
		"btn.reviews":  "⭐ Reviews",
		"btn.support":  "🆘 Support",
		"btn.settings": "⚙️ Settings",
		"btn.admin":    "🔐 Admin panel",
		"btn.back":     "🔙 Back",
		"btn.cancel":   "🔙 Cancel",
		"btn.back.admin": "🔙 Back to admin",
		"btn.paid":     "✅ I have paid",

		"welcome": "👋 Welcome to P2E Keys Shop!\n\n" +
			"🔑 Buy keys for Play-to-Earn games here\n" +
			"💰 Payments accepted in USDT (TRC20)\n\n" +
			"Pick an action:",
		"menu.main": "Main menu:",

		"sellers.header": "🛒 Pick a seller:\n\n",
		"sellers.entry":  "🔹 %s\n   💵 Price: $%s each\n   📦 Keys in stock: %d\n\n",
		"sellers.none":   "❌ No sellers available!",
		"sellers.button": "%s — $%s",

		"buy.prompt":    "🛒 %s\n💵 Price: $%s each\n\n❓ How many keys do you want?\n📦 Available: %d pcs.",
		"buy.soldout":   "❌ Sold out!",
		"buy.badseller": "❌ Malformed seller id!",
		"buy.notfound":  "❌ Seller not found!",
		"buy.badaction": "❌ Malformed action data!",

		"order.created": "🛒 Order: %s\n📦 Quantity: %d pcs.\n💵 Total due: $%s\n\n" +
			"📋 USDT (TRC20) payment details:\n%s\n\n" +
			"🆔 Payment ID: %s\n\n" +
			"⚠️ Press the button below after paying.\nAn administrator will verify the payment and send your keys.",
		"paid.wait":        "\n\n⏳ Awaiting administrator confirmation...",
		"paid.ok":          "✅ Administrator notified!",
		"payment.notfound": "❌ Payment not found!",

		"reviews.empty":  "⭐ No reviews yet. Be the first!",
		"reviews.header": "⭐ Latest reviews:\n\n",
		"reviews.entry":  "📝 #%d | 👤 %s%s\n💬 %s\n📅 %s\n\n",
		"reviews.edited": " (edited)",

		"support.prompt":   "🆘 Support\n\nDescribe your problem or question in one message.\nWe will reply as soon as possible!",
		"support.accepted": "✅ Your request #%d is registered!\nWe will get back to you shortly.",
		"support.reply":    "📩 Support reply on ticket #%d:\n\n%s",

		"settings": "⚙️ Your settings\n\n🆔 ID: %d\n👤 Username: @%s\n🛒 Purchases: %d\n\n💰 Payout wallet: Not set",

		"keys.message": "✅ Payment confirmed!\n\n🔑 Your keys (%d pcs.):\n\n%s\n\n💾 Save them! Show this message when entering the game.",

		"admin.panel": "🔐 Administration panel",
		"admin.stats": "📊 Bot stats\n\n👥 Users: %d\n🔑 Total keys: %d\n📩 Open tickets: %d\n\n💰 Sellers:\n",
		"admin.stats.seller": "  • %s: %d keys ($%s)\n",

		"btn.admin.stats":   "📊 Stats",
		"btn.admin.addsel":  "➕ Add seller",
		"btn.admin.delsel":  "➖ Remove seller",
		"btn.admin.reviews": "📝 Manage reviews",
		"btn.admin.tickets": "📩 Support tickets",
		"btn.admin.genkeys": "🔑 Generate keys",
		"btn.admin.confirm": "✅ Confirm payment",
		"btn.review.add":    "➕ Add review",
		"btn.review.edit":   "✏️ Edit review",
		"btn.review.del":    "🗑️ Delete review",

		"admin.addseller.step1": "➕ Adding a seller\n\nStep 1/3: enter the seller id (latin letters, digits and _ only)\nE.g.: seller_vip, super_keys, megashop",
		"admin.addseller.badid.empty":  "❌ Id cannot be empty! Latin letters and digits only.",
		"admin.addseller.badid.short":  "❌ Id too short (3 characters minimum)!",
		"admin.addseller.badid.exists": "❌ This id is taken! Enter another one:",
		"admin.addseller.step2":        "✅ ID: %s\n\nStep 2/3: enter the seller display name (emoji welcome):",
		"admin.addseller.step3":        "Step 3/3: enter the price per key (a number, e.g. 2.5):",
		"admin.addseller.badprice":     "❌ Enter a number greater than 0! Try again:",
		"admin.addseller.done":         "✅ Seller added!\n\n🆔 ID: %s\n🏷️ Name: %s\n💵 Price: $%s",

		"admin.delseller.pick": "➖ Pick a seller to remove:",
		"admin.delseller.none": "No sellers to remove!",
		"admin.delseller.done": "✅ Seller %s removed!",

		"admin.reviews.menu":      "📝 Review management\n\nPick an action:",
		"admin.addreview.step1":   "➕ Adding a review\n\nStep 1/2: enter the user id (or @username):",
		"admin.addreview.step2":   "Step 2/2: enter the review text:",
		"admin.addreview.done":    "✅ Review #%d added!",
		"admin.editreview.pick":   "✏️ Pick a review to edit:",
		"admin.editreview.prompt": "✏️ Editing review #%d\n\nCurrent text:\n%s\n\nEnter the new text:",
		"admin.editreview.done":   "✅ Review #%d updated!",
		"admin.editreview.fail":   "❌ Update failed!",
		"admin.delreview.pick":    "🗑️ Pick a review to delete:",
		"admin.delreview.done":    "✅ Review #%d deleted!",
		"admin.review.none":       "No reviews!",
		"admin.review.notfound":   "Review not found!",

		"admin.genkeys.pick":     "🔑 Pick a seller to generate keys for:",
		"admin.genkeys.count":    "🔢 How many keys to generate? (a number from 1 to 100):",
		"admin.genkeys.badcount": "❌ Enter a number from 1 to 100!",
		"admin.genkeys.done":     "✅ Generated %d keys!\n\nFirst 3:\n%s\n...",
		"admin.genkeys.button":   "🔑 %s (%d pcs.)",

		"admin.tickets.none":   "📩 No open tickets.",
		"admin.tickets.header": "📩 Open tickets:\n\n",
		"admin.tickets.entry":  "#%d | 👤 %s\n💬 %s\n\n",
		"admin.tickets.hint":   "\nTo reply: /reply [ID] [text]\nTo close: /close [ID]",

		"admin.payments.none":   "✅ No pending payments.",
		"admin.payments.header": "⏳ Awaiting confirmation:\n\n",
		"admin.payments.entry":  "🆔 %s\n   👤 %d | 📦 %d pcs. | 💵 $%s\n\n",
		"admin.payments.hint":   "To confirm, send:\n/confirm [PAYMENT_ID]",

		"notify.payment": "💰 New payment!\n\n👤 User: %s\n🆔 ID: %d\n🛒 Seller: %s\n📦 Quantity: %d pcs.\n💵 Amount: $%s\n🆔 Payment: %s\n\nTo confirm, send:\n/confirm %s",
		"notify.ticket":  "📩 New ticket #%d\n\n👤 From: %s\n🆔 User ID: %d\n\n💬 Message:\n%s\n\nTo reply: /reply %d [text]\nTo close: /close %d",

		"cmd.confirm.usage":    "Usage: /confirm [PAYMENT_ID]",
		"cmd.confirm.notfound": "❌ Payment not found or already confirmed!",
		"cmd.confirm.badseller": "❌ Malformed seller id in payment!",
		"cmd.confirm.shortage": "❌ Not enough keys! Need %d, have %d",
		"cmd.confirm.issuefail": "❌ Key issuance failed!",
		"cmd.confirm.sent":     "✅ Keys sent to user %d",
		"cmd.confirm.sendfail": "⚠️ Delivery failed: %s\n\nKeys:\n%s",

		"cmd.reply.usage":    "Usage: /reply [TICKET_ID] [text]",
		"cmd.reply.notfound": "Ticket not found!",
		"cmd.reply.sent":     "✅ Reply sent to user %d",
		"cmd.reply.sendfail": "⚠️ Error: %s",

		"cmd.close.usage":    "Usage: /close [TICKET_ID]",
		"cmd.close.notfound": "Ticket not found!",
		"cmd.close.done":     "✅ Ticket #%d closed",

		"unknown": "ℹ️ Use the menu or /start",
	},
}
