package mailer

// Job is the JSON payload put on the notification queue.
// Channel selects the delivery path; Template with Data is rendered by the
// worker, while Subject/Text/HTML are sent as-is when Template is empty.
type Job struct {
	Channel  string         `json:"channel"`
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)
