package bot

import (
	"fmt"
	"strings"
	"time"
)

type CommandKind int

const (
	CmdEcho CommandKind = iota
	CmdPollDate
	CmdHelp
)

// HelpText is the reply to /help and mirrors the command list below.
const HelpText = `These commands are supported:

/echo - echo the text
/polldate - create a poll for dates between start and end
/help - display this text`

type Command struct {
	Kind CommandKind

	// EchoText is the argument to /echo.
	EchoText string

	// Start and End bound the /polldate range.
	Start time.Time
	End   time.Time
}

// ParseCommand parses a message into a command. botName strips the
// "@botname" suffix Telegram appends in group chats. now anchors relative
// date expressions.
func ParseCommand(text, botName string, now time.Time) (*Command, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return nil, fmt.Errorf("not a command: '%s'", text)
	}

	name, args, _ := strings.Cut(text, " ")
	name = strings.ToLower(name)
	if botName != "" {
		name = strings.TrimSuffix(name, "@"+strings.ToLower(botName))
	}
	args = strings.TrimSpace(args)

	switch name {
	case "/echo":
		return &Command{Kind: CmdEcho, EchoText: args}, nil
	case "/polldate":
		start, end, err := ParseDateRange(args, now)
		if err != nil {
			return nil, err
		}
		return &Command{Kind: CmdPollDate, Start: start, End: end}, nil
	case "/help":
		return &Command{Kind: CmdHelp}, nil
	default:
		return nil, fmt.Errorf("unknown command '%s'", name)
	}
}
