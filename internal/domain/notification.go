package domain

// NotificationRequest asks the delivery service to send Content to Recipient.
// It only exists as a serialized payload handed to the notification bus.
type NotificationRequest struct {
	ID        string
	Channel   Channel
	Recipient string
	Subject   string // email only
	Content   string
}
