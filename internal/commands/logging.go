package commands

import (
	"strings"

	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/pkg/interfaces"
)

const commandModuleRoot = "book.commands"

// CommandLogger returns a module-scoped logger for command handlers, enriching it with
// consistent structured fields so command executions share an observability shape.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
