package service

import (
	"context"
	"errors"

	"disciplined/internal/domain/entity"
)

// ErrEndpointGone is returned by a PushTransport when the push service
// reports the subscription no longer exists (HTTP 404/410). Callers should
// delete the stored subscription so the client can re-subscribe.
var ErrEndpointGone = errors.New("push endpoint gone")

// PushMessage is the notification payload delivered to the service worker.
// It is serialized as {"title": ..., "body": ..., "data": {"url": ...}}.
type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Data  struct {
		URL string `json:"url"`
	} `json:"data"`
}

// NewPushMessage builds a PushMessage with the given click-through URL.
func NewPushMessage(title, body, url string) *PushMessage {
	msg := &PushMessage{Title: title, Body: body}
	msg.Data.URL = url

	return msg
}

// PushTransport defines the interface for delivering Web Push notifications.
type PushTransport interface {
	// Send delivers the message to the subscription's endpoint. It returns
	// ErrEndpointGone when the endpoint is expired or invalid, and a
	// generic error for other delivery failures.
	Send(ctx context.Context, sub *entity.PushSubscription, msg *PushMessage) error

	// PublicKey returns the VAPID public key clients subscribe with.
	PublicKey() string
}
