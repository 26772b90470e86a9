package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Имена обменника, очереди и ключа маршрутизации канала уведомлений.
const (
	Exchange       = "notifications"
	BroadcastQueue = "notifications.broadcast"
	BroadcastKey   = "broadcast"
)

// SetupChannel открывает канал и объявляет обменник и очередь воркера.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_, err = ch.QueueDeclare(
		BroadcastQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.QueueBind(BroadcastQueue, BroadcastKey, Exchange, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, err
}
