// Package bot implements the poll-scheduling Telegram bot: command parsing,
// the date keyboard, and the per-chat dialogue state machine.
package bot

import (
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/holloway/bookclub/internal/bot/dialog"
)

// sender is the slice of the Telegram API the bot uses. *tgbotapi.BotAPI
// satisfies it.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api      sender
	dialogs  *dialog.Store
	username string
	logger   *slog.Logger

	// now is swapped out in tests.
	now func() time.Time
}

func New(api sender, dialogs *dialog.Store, username string, logger *slog.Logger) *Bot {
	return &Bot{
		api:      api,
		dialogs:  dialogs,
		username: username,
		logger:   logger,
		now:      time.Now,
	}
}

// HandleUpdate routes one Telegram update. Errors are returned for the
// caller to log; the update loop never stops on them.
func (b *Bot) HandleUpdate(update tgbotapi.Update) error {
	switch {
	case update.Message != nil:
		return b.handleMessage(update.Message)
	case update.CallbackQuery != nil:
		return b.handleCallback(update.CallbackQuery)
	default:
		return nil
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) error {
	if msg.Text == "" {
		return nil
	}
	chatID := msg.Chat.ID

	cmd, err := ParseCommand(msg.Text, b.username, b.now())
	if err != nil {
		// The parse error is the user-facing reply, same as the help
		// nudge for unknown commands.
		return b.send(tgbotapi.NewMessage(chatID, err.Error()))
	}

	switch cmd.Kind {
	case CmdEcho:
		return b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("you said '%s'", cmd.EchoText)))

	case CmdPollDate:
		if err := b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("start: %s, end: %s",
			cmd.Start.Format(callbackDateLayout), cmd.End.Format(callbackDateLayout)))); err != nil {
			return err
		}

		selected := map[string]bool{}
		state := dialog.State{
			Kind: dialog.KindPolling,
			Polling: &dialog.Polling{
				Start:    cmd.Start,
				End:      cmd.End,
				Selected: selected,
			},
		}
		if err := b.dialogs.Set(chatID, state); err != nil {
			return err
		}

		reply := tgbotapi.NewMessage(chatID, "Select Days")
		reply.ReplyMarkup = MakeKeyboard(cmd.Start, cmd.End, selected)
		return b.send(reply)

	case CmdHelp:
		return b.send(tgbotapi.NewMessage(chatID, HelpText))
	}
	return nil
}

// handleCallback toggles the tapped date in the live poll and re-renders
// the keyboard in place. Taps outside a poll are logged and ignored.
func (b *Bot) handleCallback(q *tgbotapi.CallbackQuery) error {
	// Always ack so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.logger.Warn("answer callback", "error", err)
	}

	if q.Message == nil {
		b.logger.Warn("callback without message", "callback_id", q.ID)
		return nil
	}
	chatID := q.Message.Chat.ID

	state, err := b.dialogs.Get(chatID)
	if err != nil {
		return err
	}
	if state.Kind != dialog.KindPolling || state.Polling == nil {
		b.logger.Info("callback outside poll", "chat_id", chatID, "data", q.Data)
		return nil
	}

	poll := state.Polling
	if poll.Selected == nil {
		poll.Selected = map[string]bool{}
	}
	if poll.Selected[q.Data] {
		delete(poll.Selected, q.Data)
	} else {
		poll.Selected[q.Data] = true
	}
	if err := b.dialogs.Set(chatID, state); err != nil {
		return err
	}

	markup := MakeKeyboard(poll.Start, poll.End, poll.Selected)
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, q.Message.MessageID, markup)
	if _, err := b.api.Request(edit); err != nil {
		return fmt.Errorf("edit keyboard: %w", err)
	}
	return nil
}

func (b *Bot) send(c tgbotapi.Chattable) error {
	if _, err := b.api.Send(c); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
