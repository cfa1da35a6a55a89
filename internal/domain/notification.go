package domain

// NotificationLevel — уровень уведомления для покупателя
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationInfo    NotificationLevel = "info"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// Notification — уведомление, которое показывается покупателю
type Notification struct {
	Level   NotificationLevel
	Message string
}

func NewNotification(level NotificationLevel, message string) *Notification {
	return &Notification{
		Level:   level,
		Message: message,
	}
}
