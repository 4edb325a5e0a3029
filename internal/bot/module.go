package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"

	"github.com/Raikerian/go-telegram-cardbot/internal/commands"
	"github.com/Raikerian/go-telegram-cardbot/internal/scanner"
	"github.com/Raikerian/go-telegram-cardbot/internal/session"
	"github.com/Raikerian/go-telegram-cardbot/internal/store"
	"github.com/Raikerian/go-telegram-cardbot/internal/telegram"
)

// Module provides the bot and binds its collaborators.
var Module = fx.Module("bot",
	fx.Provide(
		NewBot,
		func(c *telegram.Client) UpdateSource { return c },
		func(api *tgbotapi.BotAPI) commands.Requester { return api },
		func(s *scanner.Scanner) CardScanner { return s },
		func(a *scanner.Advisor) FollowupAdvisor { return a },
		func(c *session.Contexts) CardContexts { return c },
		func(s *store.Store) ScanHistory { return s },
	),
)
