package mocks

import (
	"context"

	"github.com/project-moderation-api/internal/models"
	"github.com/project-moderation-api/internal/notify"
)

// Dispatch records one attempted notification
type Dispatch struct {
	Kind    models.Kind
	Event   notify.Event
	Payload notify.Payload
}

// MockDispatcher is a mock implementation of the service.Dispatcher
// contract, recording every attempt
type MockDispatcher struct {
	Dispatches    []Dispatch
	DispatchError error
}

func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

func (m *MockDispatcher) Dispatch(ctx context.Context, kind models.Kind, event notify.Event, payload notify.Payload) error {
	m.Dispatches = append(m.Dispatches, Dispatch{Kind: kind, Event: event, Payload: payload})
	return m.DispatchError
}

// SentMessage is one message captured by MockChannel
type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// MockChannel is a mock implementation of notify.Channel
type MockChannel struct {
	Sent      []SentMessage
	SendError error
}

func NewMockChannel() *MockChannel {
	return &MockChannel{}
}

func (m *MockChannel) Send(ctx context.Context, to, subject, body string) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.Sent = append(m.Sent, SentMessage{To: to, Subject: subject, Body: body})
	return nil
}
