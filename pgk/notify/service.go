package notify

import (
	"net/http"
)

// TopicFlags topic carrying moderation flag notices
const TopicFlags = "nipsa_user_requests"

// Service service interface
// Publish delivers a message to every subscriber of the topic; no
// subscribers is a successful publish.
type Service interface {
	Publish(topic string, message []byte) error
	ServeWS(w http.ResponseWriter, r *http.Request)
	Close()
}

var defaultHub = newHub()

func NewService() Service {
	return defaultHub
}
