package services

import (
	"artfolio/internal/models"
	"artfolio/internal/providers"
	"artfolio/internal/storage"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AnonymousUserID is the sender used when nobody is signed in.
const AnonymousUserID models.ID = "current-user"

// Draft is a message before it gets an id and a timestamp. An empty
// SenderID means the current user.
type Draft struct {
	SenderID      models.ID       `json:"senderId"`
	Content       string          `json:"content"`
	Subject       string          `json:"subject,omitempty"`
	SharedArtwork *models.Artwork `json:"sharedArtwork,omitempty"`
}

type ConversationService struct {
	mu       sync.RWMutex
	state    StateWriter
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	users    CurrentUserProvider
	resolver CounterpartyResolver
	threads  []models.MessageThread
	now      func() time.Time
	newID    func() models.ID
}

// Load reads the persisted inbox, seeding it on first run. Duplicate
// threads found on disk are collapsed and written back.
func (s *ConversationService) Load(ctx context.Context) error {
	var threads []models.MessageThread
	found, err := storage.GetJSON(ctx, s.state, models.KeyThreads, &threads)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err != nil:
		s.logger.Errorf(providers.TypeStore, "Unable to load threads, using seed set: %s", err)
		s.threads = seedThreads()
		s.metrics.SetThreadsTotal(len(s.threads))
		return err
	case !found:
		s.threads = seedThreads()
		s.persistLocked()
	default:
		s.threads = DeduplicateThreads(threads)
		if len(s.threads) != len(threads) {
			s.logger.Warnf(providers.TypeStore, "Collapsed %d duplicate threads", len(threads)-len(s.threads))
			s.persistLocked()
		}
	}
	s.metrics.SetThreadsTotal(len(s.threads))
	return nil
}

func (s *ConversationService) Threads() []models.MessageThread {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MessageThread, len(s.threads))
	for i := range s.threads {
		out[i] = *s.threads[i].Clone()
	}
	sortThreads(out)
	return out
}

func (s *ConversationService) GetThreadByCounterparty(id models.ID) (*models.MessageThread, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexByCounterpartyLocked(models.NormalizeID(string(id)))
	if idx < 0 {
		return nil, false
	}
	return s.threads[idx].Clone(), true
}

func (s *ConversationService) HasThread(id models.ID) bool {
	_, ok := s.GetThreadByCounterparty(id)
	return ok
}

// SendMessage appends to the counterparty's thread, creating it when the
// counterparty resolves to a known user.
func (s *ConversationService) SendMessage(ctx context.Context, counterpartyID models.ID, draft Draft) error {
	counterpartyID = models.NormalizeID(string(counterpartyID))
	if counterpartyID == "" {
		return fmt.Errorf("%w: empty counterparty", ErrInvalidTarget)
	}
	me := s.currentUserID()
	sender := models.NormalizeID(string(draft.SenderID))
	if sender == "" {
		sender = me
	}
	receiver := counterpartyID
	if sender == counterpartyID {
		receiver = me
	}

	s.mu.Lock()
	idx := s.indexByCounterpartyLocked(counterpartyID)
	s.mu.Unlock()

	var artist *models.User
	if idx < 0 {
		res, err := s.resolver.Resolve(ctx, counterpartyID)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Unable to resolve counterparty %s: %s", counterpartyID, err)
			return err
		}
		switch r := res.(type) {
		case Found:
			artist = &r.User
		case NotFound:
			s.logger.Warnf(providers.TypeApp, "Message to unknown counterparty %s dropped", r.ID)
			return fmt.Errorf("%w: %s", ErrCounterpartyNotFound, r.ID)
		}
	}

	msg := models.Message{
		ID:            s.newID(),
		SenderID:      sender,
		ReceiverID:    receiver,
		Content:       draft.Content,
		Timestamp:     s.now().UTC(),
		IsRead:        sender != counterpartyID,
		Subject:       draft.Subject,
		SharedArtwork: draft.SharedArtwork.Clone(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The thread may have been created while the resolver ran.
	idx = s.indexByCounterpartyLocked(counterpartyID)
	if idx < 0 && artist == nil {
		return fmt.Errorf("%w: thread for %s was removed", ErrThreadNotFound, counterpartyID)
	}
	if idx < 0 {
		artist.ID = counterpartyID
		s.threads = append(s.threads, models.MessageThread{
			ID:     s.newID(),
			Artist: *artist.Clone(),
		})
		idx = len(s.threads) - 1
	}
	t := &s.threads[idx]
	t.Messages = append(t.Messages, msg)
	t.LastMessage = msg.Content
	t.Date = msg.Timestamp
	t.Unread = sender == counterpartyID

	s.threads = DeduplicateThreads(s.threads)
	s.persistLocked()
	return nil
}

func (s *ConversationService) ShareArtwork(ctx context.Context, counterpartyID models.ID, artwork models.Artwork) error {
	return s.SendMessage(ctx, counterpartyID, Draft{
		Content:       "Shared an artwork: " + artwork.Title,
		SharedArtwork: &artwork,
	})
}

// MarkThreadRead always persists, even when the thread is already read.
func (s *ConversationService) MarkThreadRead(_ context.Context, threadID models.ID) error {
	threadID = models.NormalizeID(string(threadID))

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.threads, func(t models.MessageThread) bool { return t.ID == threadID })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrThreadNotFound, threadID)
	}
	t := &s.threads[idx]
	for i := range t.Messages {
		t.Messages[i].IsRead = true
	}
	t.Unread = false
	s.persistLocked()
	return nil
}

func (s *ConversationService) Deduplicate(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads = DeduplicateThreads(s.threads)
	s.persistLocked()
}

func (s *ConversationService) ResetAll(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Infof(providers.TypeApp, "Resetting conversations to the seed set")
	s.threads = seedThreads()
	s.state.Schedule(storage.Del(models.KeyThreads))
	s.persistLocked()
}

func (s *ConversationService) persistLocked() {
	s.metrics.SetThreadsTotal(len(s.threads))
	m, err := storage.PutJSON(models.KeyThreads, s.threads)
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "Unable to encode threads: %s", err)
		return
	}
	s.state.Schedule(m)
}

func (s *ConversationService) indexByCounterpartyLocked(id models.ID) int {
	return slices.IndexFunc(s.threads, func(t models.MessageThread) bool { return t.CounterpartyID() == id })
}

func (s *ConversationService) currentUserID() models.ID {
	if u, ok := s.users.CurrentUser(); ok && u.ID != "" {
		return u.ID
	}
	return AnonymousUserID
}

func NewConversationService(
	state StateWriter,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	users IdentityServiceInterface,
	resolver CounterpartyResolver,
) ConversationServiceInterface {
	return &ConversationService{
		state:    state,
		logger:   logger,
		metrics:  metrics,
		users:    users,
		resolver: resolver,
		now:      time.Now,
		newID:    func() models.ID { return models.ID(uuid.NewString()) },
	}
}
