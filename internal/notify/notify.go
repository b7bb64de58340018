package notify

import (
	"fmt"
	"io"

	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/guard"
	"github.com/fleetory/console/internal/logger"
)

// Notifier is the top level listener for gateway events. It owns the two
// side effects the HTTP layer must stay free of: telling the user what
// happened, and forcing navigation back to login when the session expires.
// Feature callers never duplicate either; they only layer their own handling
// on top of the typed error they got back.
type Notifier struct {
	out      io.Writer
	navigate func(path string)
	logger   logger.Logger
}

// New creates a notifier writing user facing messages to out.
// navigate is invoked with guard.LoginPath once per expired-session event;
// nil disables the redirect (tests).
func New(out io.Writer, navigate func(path string), log logger.Logger) *Notifier {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Notifier{out: out, navigate: navigate, logger: log}
}

func (n *Notifier) Notify(ev gateway.Event) {
	fmt.Fprintf(n.out, "%s: %s\n", title(ev.Kind), ev.Message)
	n.logger.Debug("Notified", "kind", ev.Kind)

	if ev.Kind == gateway.KindAuthExpired && n.navigate != nil {
		n.navigate(guard.LoginPath)
	}
}

// title matches the headline the dashboard showed for each kind
func title(kind string) string {
	switch kind {
	case gateway.KindAuthExpired:
		return "Session Expired"
	case gateway.KindForbidden:
		return "Access Denied"
	case gateway.KindNotFound:
		return "Not Found"
	case gateway.KindValidationFailed:
		return "Validation Error"
	case gateway.KindServerError:
		return "Server Error"
	case gateway.KindConnection:
		return "Connection Error"
	default:
		return "Error"
	}
}
