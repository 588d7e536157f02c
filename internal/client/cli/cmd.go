// Package cli is the line-oriented terminal front end of the client.
package cli

import (
	"errors"
	"strings"
)

// Command is one verb typed at the prompt.
type Command string

const (
	CommandHelp    Command = "help"
	CommandSignup  Command = "signup"
	CommandLogin   Command = "login"
	CommandLogout  Command = "logout"
	CommandGallery Command = "gallery"
	CommandProfile Command = "profile"
	CommandStudio  Command = "studio"
	CommandBuy     Command = "buy"
	CommandUpload  Command = "upload"
	CommandRemove  Command = "remove"
	CommandEdit    Command = "edit"
	CommandAvatar  Command = "avatar"
	CommandRefresh Command = "refresh"
	CommandQuit    Command = "quit"
	CommandUnknown Command = ""
)

var errUnterminatedQuote = errors.New("unterminated quote")

// ParseCommand splits a prompt line into its command and arguments. Blank
// lines and unsupported verbs yield CommandUnknown.
func ParseCommand(line string) (Command, []string, error) {
	fields, err := splitArgs(line)
	if err != nil {
		return CommandUnknown, nil, err
	}
	if len(fields) == 0 {
		return CommandUnknown, nil, nil
	}

	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "help", "?":
		return CommandHelp, args, nil
	case "signup":
		return CommandSignup, args, nil
	case "login":
		return CommandLogin, args, nil
	case "logout":
		return CommandLogout, args, nil
	case "gallery":
		return CommandGallery, args, nil
	case "profile":
		return CommandProfile, args, nil
	case "studio", "dashboard":
		return CommandStudio, args, nil
	case "buy":
		return CommandBuy, args, nil
	case "upload":
		return CommandUpload, args, nil
	case "remove", "delete":
		return CommandRemove, args, nil
	case "edit":
		return CommandEdit, args, nil
	case "avatar":
		return CommandAvatar, args, nil
	case "refresh":
		return CommandRefresh, args, nil
	case "quit", "exit":
		return CommandQuit, args, nil
	default:
		return CommandUnknown, fields, nil
	}
}

// splitArgs splits on whitespace, keeping double-quoted runs together.
func splitArgs(line string) ([]string, error) {
	var (
		out     []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			if started {
				out = append(out, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, errUnterminatedQuote
	}
	if started {
		out = append(out, cur.String())
	}
	return out, nil
}
