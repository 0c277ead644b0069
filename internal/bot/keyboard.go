package bot

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const callbackDateLayout = "2006-01-02"

// MakeKeyboard builds one button per day in [start, end), labelled like
// "Mon 02 Jan" with a check mark on selected days. The callback payload is
// the ISO date, which is what lands in the selected set. A reversed or
// empty range yields an empty keyboard.
func MakeKeyboard(start, end time.Time, selected map[string]bool) tgbotapi.InlineKeyboardMarkup {
	days := int(end.Sub(start) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, days)
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d)
		dateID := date.Format(callbackDateLayout)
		label := date.Format("Mon 02 Jan")
		if selected[dateID] {
			label += " ✅"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, dateID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
