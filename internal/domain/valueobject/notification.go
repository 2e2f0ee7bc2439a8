package valueobject

type NotificationType string

const (
	NotificationRequestReceived NotificationType = "request_received"
	NotificationRequestAccepted NotificationType = "request_accepted"
	NotificationRequestRejected NotificationType = "request_rejected"
	NotificationNewMessage      NotificationType = "new_message"
	NotificationNewReview       NotificationType = "new_review"
	NotificationSystem          NotificationType = "system"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationRequestReceived, NotificationRequestAccepted, NotificationRequestRejected,
		NotificationNewMessage, NotificationNewReview, NotificationSystem:
		return true
	}
	return false
}

// NotificationReadFilter фильтр списка уведомлений: all, unread, read.
type NotificationReadFilter string

const (
	NotificationFilterAll    NotificationReadFilter = "all"
	NotificationFilterUnread NotificationReadFilter = "unread"
	NotificationFilterRead   NotificationReadFilter = "read"
)

func NewNotificationReadFilter(raw string) NotificationReadFilter {
	switch NotificationReadFilter(raw) {
	case NotificationFilterUnread, NotificationFilterRead:
		return NotificationReadFilter(raw)
	}
	return NotificationFilterAll
}

// ReadFlag возвращает значение is_read для фильтрации или nil, если фильтр не нужен.
func (f NotificationReadFilter) ReadFlag() *bool {
	var v bool
	switch f {
	case NotificationFilterUnread:
		v = false
	case NotificationFilterRead:
		v = true
	default:
		return nil
	}
	return &v
}
