package commands

import (
	"go.uber.org/fx"

	"github.com/Raikerian/go-telegram-cardbot/internal/session"
	"github.com/Raikerian/go-telegram-cardbot/internal/telegram"
)

// Module provides command-related dependencies.
var Module = fx.Module("commands",
	fx.Provide(
		NewCommandManager,
		fx.Annotate(
			NewStartCommand,
			fx.As(new(Command)),
			fx.ResultTags(`group:"commands"`),
		),
		fx.Annotate(
			NewHelpCommand,
			fx.As(new(Command)),
			fx.ResultTags(`group:"commands"`),
		),
		fx.Annotate(
			NewVersionCommand,
			fx.As(new(Command)),
			fx.ResultTags(`group:"commands"`),
		),
		fx.Annotate(
			newCardCommand,
			fx.As(new(Command)),
			fx.ResultTags(`group:"commands"`),
		),
	),
)

func newCardCommand(messenger telegram.Messenger, contexts *session.Contexts) Command {
	return NewCardCommand(messenger, contexts)
}
