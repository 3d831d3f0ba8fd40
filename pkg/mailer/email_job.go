package mailer

import "time"

// Message is a rendered email ready for delivery. HTML is optional; Text is the fallback.
type Message struct {
	Kind    string   `json:"kind,omitempty"` // e.g. "confirm_account", "account_confirmed"
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
	HTML    string   `json:"html,omitempty"`
}

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
type EmailJob struct {
	ID         string    `json:"id"`
	Message    Message   `json:"message"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}
