package events

import "time"

// Event is the contract for all domain events published to the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "DOCUMENT_INDEXED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// DocumentIndexed is emitted after a document lands in the vector store.
func DocumentIndexed(documentId string, chunks int) Event {
	return BaseEvent{
		Type: "DOCUMENT_INDEXED",
		Data: map[string]interface{}{
			"document_id": documentId,
			"chunks":      chunks,
		},
		OccurredAt: time.Now(),
	}
}

// ChatTurnRecorded is emitted after a chat turn is appended to a thread,
// whether the assistant step succeeded or was recorded as an error message.
func ChatTurnRecorded(threadId string, role string) Event {
	return BaseEvent{
		Type: "CHAT_TURN_RECORDED",
		Data: map[string]interface{}{
			"thread_id": threadId,
			"role":      role,
		},
		OccurredAt: time.Now(),
	}
}
