package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
	// SwitchInlineQuery opens the recipient's chat picker with this query
	// pre-filled (the "share" button behavior).
	SwitchInlineQuery string
}

// Messenger is the outbound side of the chat transport. The dialog core and
// use cases only ever talk to this port; the Telegram implementation lives
// in infra.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error
	// SendKeyboard shows a reply keyboard built from rows of button labels.
	// Empty rows removes any visible keyboard.
	SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error
}
