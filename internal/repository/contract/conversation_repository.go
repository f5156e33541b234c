package contract

import "ragchat-be/internal/entity"

// ConversationRepository holds per-thread message history. Thread ids are
// generated by the client once per session; the store never mints them.
type ConversationRepository interface {
	// Append adds a message to the thread, creating the thread on first use.
	// Appends to the same thread serialize; different threads never block
	// each other.
	Append(threadId string, msg entity.Message)

	// History returns a snapshot copy of the thread's messages. Concurrent
	// appends after the call do not affect the returned slice.
	History(threadId string) []entity.Message
}
