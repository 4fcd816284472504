package notify

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/saveblush/annotate-api/core/utils"
	"github.com/saveblush/annotate-api/core/utils/logger"
)

type envelope struct {
	Topic   string          `json:"topic"`
	Message json.RawMessage `json:"message"`
}

type hub struct {
	upgrader websocket.Upgrader

	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan *envelope
	done       chan struct{}
}

func newHub() *hub {
	h := &hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan *envelope, 64),
		done:       make(chan struct{}),
	}
	go h.run()

	return h
}

func (h *hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case env := <-h.broadcast:
			b, err := json.Marshal(env)
			if err != nil {
				logger.Log.Errorf("marshal notice error: %s", err)
				continue
			}

			for client := range h.clients {
				if !client.subscribed(env.Topic) {
					continue
				}

				select {
				case client.send <- b:
				default:
					// slow consumer, drop it
					delete(h.clients, client)
					close(client.send)
				}
			}

		case <-h.done:
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		}
	}
}

// Publish broadcast a message to subscribers of topic
func (h *hub) Publish(topic string, message []byte) error {
	h.broadcast <- &envelope{Topic: topic, Message: json.RawMessage(message)}

	return nil
}

// ServeWS upgrade a subscriber connection
func (h *hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			logger.Log.Errorf("ws upgrade error: %s", err)
		}
		return
	}

	cl := &client{
		hub:    h,
		conn:   ws,
		send:   make(chan []byte, 16),
		topics: make(map[string]bool),
		ip:     utils.GetIP(r),
	}
	h.register <- cl
	logger.Log.Infof("[connected] %s", cl.IP())

	go cl.writer()
	go cl.reader()
}

// Close drop all subscribers
func (h *hub) Close() {
	close(h.done)
}
