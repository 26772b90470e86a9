package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/investwisepro/admin-console/internal/models"
)

// Broadcaster публикует уведомления в обменник notifications.
type Broadcaster struct {
	ch *amqp.Channel
}

// NewBroadcaster создает Broadcaster поверх открытого канала.
func NewBroadcaster(ch *amqp.Channel) *Broadcaster {
	return &Broadcaster{ch: ch}
}

// Broadcast публикует широковещательное сообщение об уведомлении.
func (b *Broadcaster) Broadcast(msg models.BroadcastMessage) error {
	return PublishMessage(b.ch, Exchange, BroadcastKey, msg)
}
