package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Push is an outbound FCM message addressed to a single device token.
type Push struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type PushSender interface {
	SendPush(ctx context.Context, p Push) error
}

// FCMSender delivers push notifications through Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
}

func NewFCMSender(ctx context.Context, credentialsFile string) (*FCMSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}
	return &FCMSender{client: client}, nil
}

func (s *FCMSender) SendPush(ctx context.Context, p Push) error {
	_, err := s.client.Send(ctx, &messaging.Message{
		Token: p.Token,
		Data:  p.Data,
		Notification: &messaging.Notification{
			Title: p.Title,
			Body:  p.Body,
		},
	})
	return err
}
