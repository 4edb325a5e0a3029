package commands

import (
	"fmt"
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Requester sends raw Bot API requests. *tgbotapi.BotAPI implements it.
type Requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// CommandManagerParams holds dependencies for NewCommandManager.
type CommandManagerParams struct {
	fx.In

	Logger   *zap.Logger
	Commands []Command `group:"commands"`
}

// CommandManager looks commands up by name and publishes them to Telegram.
type CommandManager struct {
	logger   *zap.Logger
	commands map[string]Command
}

// NewCommandManager indexes the commands by name. The first command wins
// when two share a name; nil commands are skipped.
func NewCommandManager(params CommandManagerParams) *CommandManager {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cm := &CommandManager{
		logger:   logger.Named("commands"),
		commands: make(map[string]Command, len(params.Commands)),
	}
	for _, cmd := range params.Commands {
		if cmd == nil {
			continue
		}
		name := cmd.Name()
		if _, exists := cm.commands[name]; exists {
			cm.logger.Warn("Duplicate command name, keeping the first", zap.String("commandName", name))

			continue
		}
		cm.commands[name] = cmd
	}

	return cm
}

// GetCommand retrieves a command by its name.
func (cm *CommandManager) GetCommand(name string) (Command, bool) {
	cmd, ok := cm.commands[name]

	return cmd, ok
}

// Commands returns every command sorted by name.
func (cm *CommandManager) Commands() []Command {
	cmds := make([]Command, 0, len(cm.commands))
	for _, cmd := range cm.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })

	return cmds
}

// RegisterCommands publishes the command list shown in Telegram's command menu.
func (cm *CommandManager) RegisterCommands(api Requester) error {
	cmds := cm.Commands()
	if len(cmds) == 0 {
		cm.logger.Info("No commands to register")

		return nil
	}

	botCommands := make([]tgbotapi.BotCommand, 0, len(cmds))
	for _, cmd := range cmds {
		botCommands = append(botCommands, tgbotapi.BotCommand{Command: cmd.Name(), Description: cmd.Description()})
	}

	if _, err := api.Request(tgbotapi.NewSetMyCommands(botCommands...)); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	cm.logger.Info("Registered bot commands", zap.Int("count", len(botCommands)))

	return nil
}
