package service

import "context"

// PushMessage is a device notification. Data values must be strings for FCM.
type PushMessage struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type PushService interface {
	Send(ctx context.Context, msg PushMessage) error
}
