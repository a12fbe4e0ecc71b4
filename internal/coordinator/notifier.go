package coordinator

import "log/slog"

// Notifier receives shaped payloads for outbound messages. Formatting
// and transport live outside this core.
type Notifier interface {
	ClientResponded(payload *ConfirmationPayload)
}

type logNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier() Notifier {
	return &logNotifier{logger: slog.With("logger", "notifier")}
}

func (n *logNotifier) ClientResponded(payload *ConfirmationPayload) {
	if payload == nil || payload.Session == nil {
		return
	}

	n.logger.Info("client responded",
		slog.Any("session", payload.Session.ID),
		slog.Any("slot", payload.SelectedSlot))
}
