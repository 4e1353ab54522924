package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/project-moderation-api/internal/models"
	"github.com/rs/zerolog"
)

// Event is the notification trigger: a submission being received, approved
// or rejected
type Event string

const (
	EventReceived Event = "received"
	EventApproved Event = "approved"
	EventRejected Event = "rejected"
)

// ErrNoRecipient is returned when a dispatch has no usable contact address.
// Callers log and skip; they must not retry.
var ErrNoRecipient = errors.New("notify: no recipient address")

// Payload carries the submitter-facing context for one notification
type Payload struct {
	RecipientName  string
	RecipientEmail string
	Title          string
	// Context holds kind-specific extras (project name, tech stack, ...)
	// referenced by templates.
	Context map[string]string
}

// Channel delivers a rendered message. The SMTP implementation lives in
// channel.go; tests substitute their own.
type Channel interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Dispatcher maps (kind, event) pairs to message templates and attempts
// delivery over a Channel. Delivery is best-effort from the caller's point
// of view: the triggering mutation has already committed.
type Dispatcher struct {
	channel Channel
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher delivering over the given channel
func NewDispatcher(channel Channel, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		channel: channel,
		log:     log.With().Str("component", "notify").Logger(),
	}
}

// Dispatch renders the template for (kind, event) and attempts one delivery.
// A missing or placeholder recipient fails fast with ErrNoRecipient.
func (d *Dispatcher) Dispatch(ctx context.Context, kind models.Kind, event Event, payload Payload) error {
	if !usableRecipient(payload.RecipientEmail) {
		return fmt.Errorf("%w: %q", ErrNoRecipient, payload.RecipientEmail)
	}

	tmpl, ok := templates[templateKey{kind, event}]
	if !ok {
		return fmt.Errorf("notify: no template for kind=%s event=%s", kind, event)
	}

	var body bytes.Buffer
	if err := tmpl.body.Execute(&body, payload); err != nil {
		return fmt.Errorf("notify: render %s/%s: %w", kind, event, err)
	}

	if err := d.channel.Send(ctx, payload.RecipientEmail, tmpl.subject, body.String()); err != nil {
		return fmt.Errorf("notify: send %s/%s: %w", kind, event, err)
	}

	d.log.Info().
		Str("kind", string(kind)).
		Str("event", string(event)).
		Str("to", payload.RecipientEmail).
		Msg("Notification dispatched")
	return nil
}

// usableRecipient rejects empty and placeholder addresses
func usableRecipient(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return false
	}
	if strings.HasSuffix(email, "@example.com") || strings.HasPrefix(email, "noreply@") {
		return false
	}
	return true
}

type templateKey struct {
	kind  models.Kind
	event Event
}

type message struct {
	subject string
	body    *template.Template
}

func mustMessage(subject, body string) message {
	return message{
		subject: subject,
		body:    template.Must(template.New("").Parse(body)),
	}
}

// templates is the single (kind x event) mapping table. Each kind keeps its
// own copy so wording stays independently editable.
var templates = map[templateKey]message{
	{models.KindIdea, EventReceived}: mustMessage(
		"We received your project idea",
		"Hi {{.RecipientName}},\n\nThanks for submitting your idea \"{{.Title}}\". "+
			"Our moderators will review it shortly and you'll hear back from us either way.\n\n"+
			"The Team",
	),
	{models.KindIdea, EventApproved}: mustMessage(
		"Your project idea is live",
		"Hi {{.RecipientName}},\n\nGreat news! Your idea \"{{.Title}}\" was approved and "+
			"is now visible to the community. Contributors can start requesting to join.\n\n"+
			"The Team",
	),
	{models.KindIdea, EventRejected}: mustMessage(
		"Update on your project idea",
		"Hi {{.RecipientName}},\n\nThanks for submitting \"{{.Title}}\". After review we "+
			"decided not to publish it this time. You're welcome to refine it and submit again.\n\n"+
			"The Team",
	),

	{models.KindJoinRequest, EventReceived}: mustMessage(
		"We received your request to join",
		"Hi {{.RecipientName}},\n\nYour request to join \"{{.Title}}\" is in. "+
			"Tech stack noted: {{index .Context \"tech_stack\"}}. We'll let you know once it's reviewed.\n\n"+
			"The Team",
	),
	{models.KindJoinRequest, EventApproved}: mustMessage(
		"You're in! Join request approved",
		"Hi {{.RecipientName}},\n\nYour request to join \"{{.Title}}\" was approved. "+
			"The idea owner will reach out with next steps.\n\n"+
			"The Team",
	),
	{models.KindJoinRequest, EventRejected}: mustMessage(
		"Update on your join request",
		"Hi {{.RecipientName}},\n\nYour request to join \"{{.Title}}\" wasn't accepted "+
			"this time. Plenty of other ideas are looking for contributors.\n\n"+
			"The Team",
	),

	{models.KindFeature, EventReceived}: mustMessage(
		"We received your feature proposal",
		"Hi {{.RecipientName}},\n\nYour feature proposal \"{{.Title}}\" for "+
			"{{index .Context \"project_name\"}} is queued for review.\n\n"+
			"The Team",
	),
	{models.KindFeature, EventApproved}: mustMessage(
		"Feature proposal approved",
		"Hi {{.RecipientName}},\n\nYour feature proposal \"{{.Title}}\" for "+
			"{{index .Context \"project_name\"}} was approved and is now listed on the project page.\n\n"+
			"The Team",
	),
	{models.KindFeature, EventRejected}: mustMessage(
		"Update on your feature proposal",
		"Hi {{.RecipientName}},\n\nYour feature proposal \"{{.Title}}\" for "+
			"{{index .Context \"project_name\"}} wasn't accepted this time.\n\n"+
			"The Team",
	),

	{models.KindContribution, EventReceived}: mustMessage(
		"We received your contribution",
		"Hi {{.RecipientName}},\n\nYour contribution \"{{.Title}}\" to "+
			"{{index .Context \"project_name\"}} is queued for review.\n\n"+
			"The Team",
	),
	{models.KindContribution, EventApproved}: mustMessage(
		"Contribution approved",
		"Hi {{.RecipientName}},\n\nYour contribution \"{{.Title}}\" to "+
			"{{index .Context \"project_name\"}} was approved. Thanks for helping out!\n\n"+
			"The Team",
	),
	{models.KindContribution, EventRejected}: mustMessage(
		"Update on your contribution",
		"Hi {{.RecipientName}},\n\nYour contribution \"{{.Title}}\" to "+
			"{{index .Context \"project_name\"}} wasn't accepted this time.\n\n"+
			"The Team",
	),
}
