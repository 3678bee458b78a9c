package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeSessionAuthenticated = "session.authenticated"
	EventTypeSessionCleared       = "session.cleared"
	// EventTypeLoginRequired asks whatever drives the UI to send the user
	// back to the login screen.
	EventTypeLoginRequired = "navigation.login_required"
)

type SessionAuthenticatedEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func NewSessionAuthenticatedEvent(userID, email string) *SessionAuthenticatedEvent {
	return &SessionAuthenticatedEvent{
		BaseEvent: newBase(EventTypeSessionAuthenticated, map[string]interface{}{
			"user_id": userID,
			"email":   email,
		}),
		UserID: userID,
		Email:  email,
	}
}

type SessionClearedEvent struct {
	BaseEvent
	Reason string `json:"reason"`
}

func NewSessionClearedEvent(reason string) *SessionClearedEvent {
	return &SessionClearedEvent{
		BaseEvent: newBase(EventTypeSessionCleared, map[string]interface{}{"reason": reason}),
		Reason:    reason,
	}
}

type LoginRequiredEvent struct {
	BaseEvent
	Reason string `json:"reason"`
}

func NewLoginRequiredEvent(reason string) *LoginRequiredEvent {
	return &LoginRequiredEvent{
		BaseEvent: newBase(EventTypeLoginRequired, map[string]interface{}{"reason": reason}),
		Reason:    reason,
	}
}

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
