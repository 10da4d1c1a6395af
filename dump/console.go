package dump

import (
	"fmt"

	"go.uber.org/zap"
)

// Console is where user visible one line reports go.
type Console interface {
	PrintLine(format string, args ...any)
}

// ZapConsole prints lines as informational log messages.
type ZapConsole struct {
	Log *zap.Logger
}

func (c ZapConsole) PrintLine(format string, args ...any) {
	if c.Log == nil {
		return
	}
	c.Log.Info(fmt.Sprintf(format, args...))
}
