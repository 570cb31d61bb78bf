package realtime

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventType describes what happened to a row.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
	// EventExternal is published when the store changed outside the application.
	EventExternal EventType = "external"
)

// AllTables subscribes to every table.
const AllTables = "*"

const defaultQueueSize = 16

// Event is a change notification for a single table.
type Event struct {
	Type     EventType `json:"type"`
	Table    string    `json:"table"`
	RecordID string    `json:"record_id,omitempty"`
	At       time.Time `json:"at"`
}

// Handler receives events on the subscriber's own goroutine.
type Handler func(Event)

type subscriber struct {
	table   string
	handler Handler
	queue   chan Event
	done    chan struct{}
}

// Hub fans change notifications out to subscribers. Each subscriber has its own queue
// and goroutine, so a slow handler never blocks publishers or other subscribers.
type Hub struct {
	mu        sync.RWMutex
	subs      map[*subscriber]struct{}
	wg        sync.WaitGroup
	logger    *zap.Logger
	queueSize int
	closed    bool
}

// NewHub creates an empty hub. A nil logger disables drop logging.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:      make(map[*subscriber]struct{}),
		logger:    logger,
		queueSize: defaultQueueSize,
	}
}

// Subscribe registers handler for events of table (or AllTables). The returned function
// removes the subscription and waits for its goroutine to exit; it is safe to call twice
// but must not be called from inside handler.
func (h *Hub) Subscribe(table string, handler Handler) func() {
	sub := &subscriber{
		table:   table,
		handler: handler,
		queue:   make(chan Event, h.queueSize),
		done:    make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return func() {}
	}
	h.subs[sub] = struct{}{}
	h.wg.Add(1)
	h.mu.Unlock()

	go h.run(sub)

	var once sync.Once
	return func() {
		once.Do(func() {
			h.remove(sub)
			<-sub.done
		})
	}
}

func (h *Hub) run(sub *subscriber) {
	defer h.wg.Done()
	defer close(sub.done)
	for event := range sub.queue {
		sub.handler(event)
	}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.queue)
}

// Publish delivers event to every matching subscriber without blocking. A full
// subscriber queue drops the event for that subscriber only.
func (h *Hub) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for sub := range h.subs {
		if sub.table != AllTables && sub.table != event.Table {
			continue
		}
		select {
		case sub.queue <- event:
		default:
			h.logger.Warn("change notification dropped",
				zap.String("table", event.Table),
				zap.String("type", string(event.Type)),
			)
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close removes every subscription and waits for their goroutines.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.queue)
	}
	h.mu.Unlock()

	h.wg.Wait()
}
