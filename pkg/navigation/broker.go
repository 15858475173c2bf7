package navigation

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	subscriberBuffer = 8
	recentAlerts     = 10
)

// Alert is a live notification pushed to everyone subscribed to the alert stream.
type Alert struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[uuid.UUID]chan Alert),
	}
}

type Broker struct {
	lock        sync.Mutex
	subscribers map[uuid.UUID]chan Alert
	recent      []Alert
}

func (b *Broker) Subscribe() (uuid.UUID, <-chan Alert) {
	b.lock.Lock()
	defer b.lock.Unlock()

	id := uuid.New()
	channel := make(chan Alert, subscriberBuffer)
	b.subscribers[id] = channel
	return id, channel
}

// Unsubscribe closes the channel of the subscriber. Unknown ids are ignored.
func (b *Broker) Unsubscribe(id uuid.UUID) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if channel, ok := b.subscribers[id]; ok {
		close(channel)
		delete(b.subscribers, id)
	}
}

// Broadcast sends the alert to every subscriber and returns how many received it. Subscribers which can't keep up
// miss the alert rather than blocking the sender.
func (b *Broker) Broadcast(message string) int {
	alert := Alert{Message: message, CreatedAt: time.Now().UTC()}

	b.lock.Lock()
	defer b.lock.Unlock()

	b.recent = append(b.recent, alert)
	if len(b.recent) > recentAlerts {
		b.recent = b.recent[len(b.recent)-recentAlerts:]
	}

	delivered := 0
	for _, channel := range b.subscribers {
		select {
		case channel <- alert:
			delivered++
		default:
		}
	}
	return delivered
}

// Recent returns the latest alerts, newest first.
func (b *Broker) Recent() []Alert {
	b.lock.Lock()
	defer b.lock.Unlock()

	alerts := make([]Alert, len(b.recent))
	for i, alert := range b.recent {
		alerts[len(b.recent)-1-i] = alert
	}
	return alerts
}

func (b *Broker) Subscribers() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return len(b.subscribers)
}
