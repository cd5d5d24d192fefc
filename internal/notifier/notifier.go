package notifier

import (
	"github.com/naveensh16/sweet-shop-management/logger"
)

// Notifier abstracts the delivery channel (console now, email/Slack later).
type Notifier interface {
	Notify(subject, message string) error
}

type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (n *ConsoleNotifier) Notify(subject, message string) error {
	logger.Log.Info("[notify] "+subject, "message", message)
	return nil
}
