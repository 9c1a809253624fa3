package firebase

import (
	"context"

	"firebase.google.com/go/v4/messaging"

	"dukkan/internal/domain/service"
)

type FirebaseMessagingClient struct {
	client *messaging.Client
}

func NewFirebaseMessagingClient(ctx context.Context, app *App) (*FirebaseMessagingClient, error) {
	client, err := app.App.Messaging(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseMessagingClient{client: client}, nil
}

func (f *FirebaseMessagingClient) Send(ctx context.Context, msg service.PushMessage) error {
	_, err := f.client.Send(ctx, &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	})
	return err
}

// IsStaleToken reports whether FCM rejected the token for good, so it should be forgotten.
func IsStaleToken(err error) bool {
	return messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err)
}
