package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	buttonCheck    = "🔍 Check user"
	buttonGarants  = "✅ Guarantors"
	buttonHelp     = "ℹ️ Help"
)

// mainKeyboard is the persistent reply keyboard shown on /start.
func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonCheck),
			tgbotapi.NewKeyboardButton(buttonGarants),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonHelp),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// keyboardCommand maps keyboard button text to the command it stands for.
func keyboardCommand(text string) (string, bool) {
	switch text {
	case buttonCheck:
		return "help", true // checking needs a target; show usage
	case buttonGarants:
		return "garants", true
	case buttonHelp:
		return "help", true
	default:
		return "", false
	}
}
