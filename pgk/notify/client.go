package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"github.com/saveblush/annotate-api/core/utils/logger"
)

const (
	// Time allowed to read the next pong message from the client.
	pongWait = 60 * time.Second

	maxMessageLength = 4096
)

type client struct {
	hub  *hub
	conn *websocket.Conn
	send chan []byte

	muTopics sync.Mutex
	topics   map[string]bool

	ip string
}

func (cl *client) IP() string {
	return cl.ip
}

func (cl *client) subscribed(topic string) bool {
	cl.muTopics.Lock()
	defer cl.muTopics.Unlock()

	return cl.topics[topic]
}

func (cl *client) subscribe(topic string, on bool) {
	cl.muTopics.Lock()
	defer cl.muTopics.Unlock()

	if on {
		cl.topics[topic] = true
	} else {
		delete(cl.topics, topic)
	}
}

// reader reads subscribe/unsubscribe messages from the client
func (cl *client) reader() {
	defer func() {
		cl.hub.unregister <- cl
		cl.conn.Close()
		logger.Log.Infof("[disconnect] %s", cl.IP())
	}()

	cl.conn.SetReadLimit(maxMessageLength)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error { cl.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		mt, msg, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseNormalClosure,
				websocket.CloseAbnormalClosure,
				websocket.CloseNoStatusReceived,
				websocket.CloseGoingAway,
			) {
				logger.Log.Warnf("unexpected close error from %s: %s", cl.IP(), err)
			}
			break
		}

		if mt != websocket.TextMessage {
			continue
		}

		action := gjson.GetBytes(msg, "action").String()
		topic := gjson.GetBytes(msg, "topic").String()
		if topic == "" {
			continue
		}

		switch action {
		case "subscribe":
			cl.subscribe(topic, true)
		case "unsubscribe":
			cl.subscribe(topic, false)
		}
	}
}

// writer sends notices from the hub to the client
func (cl *client) writer() {
	for msg := range cl.send {
		err := cl.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			logger.Log.Errorf("write msg error: %s", err)
			return
		}
	}

	cl.conn.WriteMessage(websocket.CloseMessage, nil)
}
