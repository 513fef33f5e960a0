// internal/workers/application/send-notification/models.go
package sendnotification

type Input struct {
	NotificationType  string `json:"notificationType"`
	RecipientType     string `json:"recipientType"` // "seeker" or "company"
	RecipientID       int64  `json:"recipientId"`
	Priority          string `json:"priority,omitempty"`
	JobTitle          string `json:"jobTitle,omitempty"`
	ApplicationID     int64  `json:"applicationId,omitempty"`
	ApplicationStatus string `json:"applicationStatus,omitempty"`
	QuizTitle         string `json:"quizTitle,omitempty"`
	Score             int    `json:"score,omitempty"`
	Passed            bool   `json:"passed,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent", "disabled"
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeApplicationSubmitted = "application_submitted"
	TypeNewApplication       = "new_application"
	TypeQuizResult           = "quiz_result"
	TypeStatusChanged        = "application_status_changed"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)

// Recipient types
const (
	RecipientTypeSeeker  = "seeker"
	RecipientTypeCompany = "company"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

const PriorityHigh = "high"
