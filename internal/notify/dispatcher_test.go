package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/project-moderation-api/internal/models"
	"github.com/rs/zerolog"
)

type captureChannel struct {
	to      string
	subject string
	body    string
	err     error
}

func (c *captureChannel) Send(ctx context.Context, to, subject, body string) error {
	if c.err != nil {
		return c.err
	}
	c.to, c.subject, c.body = to, subject, body
	return nil
}

func TestTemplateTable_CoversAllKindsAndEvents(t *testing.T) {
	events := []Event{EventReceived, EventApproved, EventRejected}
	for _, kind := range models.AllKinds {
		for _, event := range events {
			if _, ok := templates[templateKey{kind, event}]; !ok {
				t.Errorf("Missing template for kind=%s event=%s", kind, event)
			}
		}
	}
	if len(templates) != len(models.AllKinds)*len(events) {
		t.Errorf("Expected %d templates, got %d", len(models.AllKinds)*len(events), len(templates))
	}
}

func TestDispatch_RendersAndSends(t *testing.T) {
	channel := &captureChannel{}
	d := NewDispatcher(channel, zerolog.Nop())

	err := d.Dispatch(context.Background(), models.KindFeature, EventApproved, Payload{
		RecipientName:  "Ada",
		RecipientEmail: "ada@test.dev",
		Title:          "Dark mode",
		Context:        map[string]string{"project_name": "Example"},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if channel.to != "ada@test.dev" {
		t.Errorf("Expected delivery to submitter, got %q", channel.to)
	}
	if channel.subject == "" {
		t.Error("Expected a subject line")
	}
	if !strings.Contains(channel.body, "Dark mode") {
		t.Errorf("Body should mention the title, got %q", channel.body)
	}
	if !strings.Contains(channel.body, "Example") {
		t.Errorf("Body should mention the project name, got %q", channel.body)
	}
	if !strings.Contains(channel.body, "Ada") {
		t.Errorf("Body should greet the recipient, got %q", channel.body)
	}
}

func TestDispatch_NoRecipient(t *testing.T) {
	d := NewDispatcher(&captureChannel{}, zerolog.Nop())

	tests := []struct {
		name  string
		email string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"no at sign", "ada.test.dev"},
		{"placeholder domain", "someone@example.com"},
		{"noreply", "noreply@test.dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Dispatch(context.Background(), models.KindIdea, EventApproved, Payload{
				RecipientName:  "Ada",
				RecipientEmail: tt.email,
				Title:          "x",
			})
			if !errors.Is(err, ErrNoRecipient) {
				t.Errorf("Expected ErrNoRecipient for %q, got %v", tt.email, err)
			}
		})
	}
}

func TestDispatch_UnknownTemplate(t *testing.T) {
	d := NewDispatcher(&captureChannel{}, zerolog.Nop())

	err := d.Dispatch(context.Background(), models.Kind("bogus"), EventApproved, Payload{
		RecipientEmail: "ada@test.dev",
	})
	if err == nil || errors.Is(err, ErrNoRecipient) {
		t.Errorf("Expected template lookup error, got %v", err)
	}
}

func TestDispatch_ChannelFailurePropagates(t *testing.T) {
	channel := &captureChannel{err: errors.New("connection refused")}
	d := NewDispatcher(channel, zerolog.Nop())

	err := d.Dispatch(context.Background(), models.KindIdea, EventRejected, Payload{
		RecipientName:  "Ada",
		RecipientEmail: "ada@test.dev",
		Title:          "x",
	})
	if err == nil {
		t.Fatal("Expected channel failure to propagate to the dispatcher's caller")
	}
	if errors.Is(err, ErrNoRecipient) {
		t.Error("Channel failure must stay distinguishable from a missing recipient")
	}
}

func TestLogChannel_AlwaysSucceeds(t *testing.T) {
	channel := NewLogChannel(zerolog.Nop())
	if err := channel.Send(context.Background(), "ada@test.dev", "s", "b"); err != nil {
		t.Errorf("Log channel should never fail, got %v", err)
	}
}
