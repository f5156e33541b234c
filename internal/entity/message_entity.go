package entity

import (
	"time"

	"github.com/google/uuid"
)

// Citation is a read-only projection of a retrieved document, attached to an
// assistant message at response time. Text carries the APA-formatted string.
type Citation struct {
	Text   string
	Source string
	Title  string
	Author string
	Year   string
}

// Message is one turn entry in a conversation thread. Ordering within a
// thread is append-only.
type Message struct {
	Id        uuid.UUID
	Role      string
	Content   string
	Timestamp time.Time
	Citations []Citation
}
