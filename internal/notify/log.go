package notify

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogNotifier writes messages to the log instead of sending them.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, msg Message) (Receipt, error) {
	id := uuid.NewString()
	n.logger.Info("email suppressed",
		zap.String("message_id", id),
		zap.String("to", msg.To),
		zap.String("from", msg.From),
		zap.String("subject", msg.Subject))
	return Receipt{StatusCode: http.StatusAccepted, MessageID: id}, nil
}
