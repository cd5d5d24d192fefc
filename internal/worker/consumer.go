package worker

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/naveensh16/sweet-shop-management/internal/events"
	"github.com/naveensh16/sweet-shop-management/internal/notifier"
	"github.com/naveensh16/sweet-shop-management/logger"
	"github.com/naveensh16/sweet-shop-management/pkg/mq"
)

// LowStockThreshold triggers a warning notice when a purchase leaves this many
// units or fewer on the shelf.
const LowStockThreshold = 10

type Worker struct {
	consumer *mq.Consumer
	notifier notifier.Notifier
}

func New(consumer *mq.Consumer, n notifier.Notifier) *Worker {
	return &Worker{consumer: consumer, notifier: n}
}

func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.consumer.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.handle(d); err != nil {
				logger.Log.Error("[notify] handle failed", "key", d.RoutingKey, "err", err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *Worker) handle(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKSweetPurchased:
		ev, err := events.Decode[events.SweetPurchased](d.Body)
		if err != nil {
			return err
		}
		if ev.Remaining > 0 && ev.Remaining <= LowStockThreshold {
			return w.notifier.Notify("Low stock",
				fmt.Sprintf("%s (id=%d) is down to %d units", ev.Name, ev.SweetID, ev.Remaining))
		}
		return nil

	case events.RKSweetOutOfStock:
		ev, err := events.Decode[events.SweetOutOfStock](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Out of stock",
			fmt.Sprintf("%s (id=%d) has sold out", ev.Name, ev.SweetID))

	case events.RKSweetRestocked:
		ev, err := events.Decode[events.SweetRestocked](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Restocked",
			fmt.Sprintf("%s (id=%d) restocked by %d, now %d units", ev.Name, ev.SweetID, ev.Quantity, ev.Total))

	default:
		logger.Log.Debug("[notify] skip unknown key", "key", d.RoutingKey)
		return nil
	}
}
