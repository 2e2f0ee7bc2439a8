package valueobject

import "github.com/skillswap/backend/internal/pkg/apperror"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusCancelled RequestStatus = "cancelled"
)

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:   {RequestStatusAccepted, RequestStatusRejected, RequestStatusCancelled},
	RequestStatusAccepted:  {RequestStatusCompleted, RequestStatusCancelled},
	RequestStatusRejected:  {},
	RequestStatusCompleted: {},
	RequestStatusCancelled: {},
}

// ActiveRequestStatuses блокируют создание новой заявки той же парой (отправитель, навык).
var ActiveRequestStatuses = []RequestStatus{RequestStatusPending, RequestStatusAccepted}

func AllRequestStatuses() []RequestStatus {
	return []RequestStatus{
		RequestStatusPending,
		RequestStatusAccepted,
		RequestStatusRejected,
		RequestStatusCompleted,
		RequestStatusCancelled,
	}
}

func (s RequestStatus) IsValid() bool {
	_, ok := requestTransitions[s]
	return ok
}

func (s RequestStatus) IsTerminal() bool {
	return s.IsValid() && len(requestTransitions[s]) == 0
}

func (s RequestStatus) IsActive() bool {
	return s == RequestStatusPending || s == RequestStatusAccepted
}

func (s RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	for _, status := range requestTransitions[s] {
		if status == newStatus {
			return true
		}
	}
	return false
}

func (s RequestStatus) String() string {
	return string(s)
}

func NewRequestStatus(status string) (RequestStatus, error) {
	s := RequestStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус заявки")
	}
	return s, nil
}

// ParseStatusFilter разбирает фильтр списка заявок: пустая строка и "all" означают без фильтра.
func ParseStatusFilter(raw string) (*RequestStatus, error) {
	if raw == "" || raw == "all" {
		return nil, nil
	}
	s, err := NewRequestStatus(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
