// internal/event/event.go
package event

//go:generate go tool mockgen -destination=./mocks/listener_mock.go -package=mocks . Listener

// EventType - тип события
type EventType string

// Event - структура события
type Event struct {
	Type EventType
	Data any // Данные события, если нужны
}

// Listener - интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// Subscription identifies one Subscribe call; pass it to Unsubscribe.
type Subscription struct {
	Type EventType
	id   uint64
}

type subscriber struct {
	id       uint64
	listener Listener
}

// Dispatcher - диспетчер событий. Доставка синхронная, в порядке подписки.
type Dispatcher struct {
	listeners map[EventType][]subscriber
	nextID    uint64
}

// NewDispatcher - создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]subscriber),
	}
}

// Subscribe - подписка на событие
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) Subscription {
	d.nextID++
	d.listeners[eventType] = append(d.listeners[eventType], subscriber{id: d.nextID, listener: listener})
	return Subscription{Type: eventType, id: d.nextID}
}

// Unsubscribe - отписка от события. Безопасно вызывать из обработчика.
func (d *Dispatcher) Unsubscribe(sub Subscription) {
	subs := d.listeners[sub.Type]
	for i, s := range subs {
		if s.id != sub.id {
			continue
		}
		// Копируем срез: текущая рассылка продолжает идти по старому.
		next := make([]subscriber, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		d.listeners[sub.Type] = next
		return
	}
}

// Dispatch - отправка события всем подписчикам
func (d *Dispatcher) Dispatch(event Event) {
	for _, s := range d.listeners[event.Type] {
		s.listener.OnEvent(event)
	}
}

// Listeners returns the number of subscribers for eventType.
func (d *Dispatcher) Listeners(eventType EventType) int {
	return len(d.listeners[eventType])
}
