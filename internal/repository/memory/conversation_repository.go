package memory

import (
	"sync"

	"ragchat-be/internal/entity"
	"ragchat-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// ConversationRepository keeps per-thread message history in memory. Threads
// never expire here; eviction is a deployment concern, not part of the
// conversation contract.
type ConversationRepository struct {
	mu      sync.Mutex // guards thread creation only
	threads *cache.Cache
}

type threadRecord struct {
	mu       sync.Mutex
	messages []entity.Message
}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{
		threads: cache.New(cache.NoExpiration, 0),
	}
}

var _ contract.ConversationRepository = (*ConversationRepository)(nil)

func (r *ConversationRepository) thread(threadId string) *threadRecord {
	if x, found := r.threads.Get(threadId); found {
		return x.(*threadRecord)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the lock; another goroutine may have created it.
	if x, found := r.threads.Get(threadId); found {
		return x.(*threadRecord)
	}
	rec := &threadRecord{}
	r.threads.Set(threadId, rec, cache.NoExpiration)
	return rec
}

func (r *ConversationRepository) Append(threadId string, msg entity.Message) {
	rec := r.thread(threadId)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.messages = append(rec.messages, msg)
}

func (r *ConversationRepository) History(threadId string) []entity.Message {
	rec := r.thread(threadId)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]entity.Message, len(rec.messages))
	copy(out, rec.messages)
	return out
}
