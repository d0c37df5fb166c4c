package wizard_sessions

import (
	"context"

	"github.com/focus-space/FS-BookingService/internal/service/wizardsessions"
)

type WizardSessionService interface {
	Start(ctx context.Context) (*wizardsessions.State, error)
	Get(ctx context.Context, id string) (*wizardsessions.State, error)
	Apply(ctx context.Context, id string, event *wizardsessions.Event) (*wizardsessions.State, error)
	Confirm(ctx context.Context, id string) (*wizardsessions.State, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
