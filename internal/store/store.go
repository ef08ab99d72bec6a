package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/38tter/beer-analyzer-sub000/internal/models"
)

const DefaultPageSize = 10

// Subscription is the owned handle to a live query. The channel conflates to
// the latest snapshot: a slow consumer sees the newest result set, not a
// backlog. The channel is closed when the subscription is replaced or stopped.
type Subscription struct {
	userID  string
	updates chan []models.BeerRecord
	once    sync.Once
}

func newSubscription(userID string) *Subscription {
	return &Subscription{userID: userID, updates: make(chan []models.BeerRecord, 1)}
}

// Updates delivers result-set snapshots, newest last.
func (s *Subscription) Updates() <-chan []models.BeerRecord {
	return s.updates
}

func (s *Subscription) stop() {
	s.once.Do(func() { close(s.updates) })
}

// push replaces any undelivered snapshot with the new one.
func (s *Subscription) push(recs []models.BeerRecord) {
	for {
		select {
		case s.updates <- recs:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}

// session is one user's query state: the live subscription plus the
// pagination cursor of the most recent Query. Stopping the subscription
// leaves the cursor in place so a REST caller can keep paging.
type session struct {
	sub        *Subscription
	active     bool
	descending bool
	cursor     *Cursor
	loaded     int
	hasMore    bool
}

// advance moves the cursor past the fetched page and updates the exhaustion
// flag. Fewer rows than a full page means nothing further exists.
func (sess *session) advance(recs []models.BeerRecord, pageSize int) {
	if len(recs) > 0 {
		last := recs[len(recs)-1]
		sess.cursor = &Cursor{Timestamp: last.Timestamp, ID: last.ID}
		sess.loaded += len(recs)
	}
	if len(recs) < pageSize {
		sess.hasMore = false
	}
}

// BeerStore is the sole owner of durable record access. Query state is kept
// per user: each user holds at most one live subscription at a time, and
// every Query (and ChangeSortOrder) cancels and replaces that user's previous
// one, which also discards their pagination cursor, so stale-order results
// and duplicate event delivery cannot occur. One user's queries never touch
// another user's subscription or cursor.
type BeerStore struct {
	repo     Repository
	pageSize int
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewBeerStore(repo Repository, pageSize int) *BeerStore {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &BeerStore{
		repo:     repo,
		pageSize: pageSize,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

func (s *BeerStore) sessionLocked(userID string) *session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{}
		s.sessions[userID] = sess
	}
	return sess
}

// Create persists a new record from an analysis result. The timestamp and
// drunk flag are assigned here; the returned record carries the store id.
func (s *BeerStore) Create(ctx context.Context, res models.AnalysisResult, userID, imageURL string) (*models.BeerRecord, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	rec := models.FromAnalysis(res, userID, imageURL, s.now().UTC())
	id, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("create beer record: %w", err)
	}
	rec.ID = id

	s.mu.Lock()
	s.refreshLocked(ctx, userID)
	s.mu.Unlock()
	return rec, nil
}

// Get fetches one record by id for this user.
func (s *BeerStore) Get(ctx context.Context, id, userID string) (*models.BeerRecord, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	return s.repo.Get(ctx, id, userID)
}

// Update overwrites the whole record. A missing record surfaces ErrNotFound;
// it is never silently created.
func (s *BeerStore) Update(ctx context.Context, id, userID string, rec *models.BeerRecord) error {
	if userID == "" {
		return ErrAuthRequired
	}
	if err := s.repo.Update(ctx, id, userID, rec); err != nil {
		return err
	}
	s.mu.Lock()
	s.refreshLocked(ctx, userID)
	s.mu.Unlock()
	return nil
}

// ToggleDrunk flips the drunk flag in one statement, so concurrent toggles
// never act on a stale read of the flag.
func (s *BeerStore) ToggleDrunk(ctx context.Context, id, userID string) (*models.BeerRecord, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	rec, err := s.repo.ToggleDrunk(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.refreshLocked(ctx, userID)
	s.mu.Unlock()
	return rec, nil
}

// Delete removes the record. The underlying store does not guarantee
// idempotence; callers treat delete as best-effort-once.
func (s *BeerStore) Delete(ctx context.Context, id, userID string) error {
	if userID == "" {
		return ErrAuthRequired
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.mu.Lock()
	s.refreshLocked(ctx, userID)
	s.mu.Unlock()
	return nil
}

// Query establishes the live query for userID ordered by timestamp, replacing
// any subscription that user previously held. The first page is delivered on
// the returned subscription.
func (s *BeerStore) Query(ctx context.Context, userID string, descending bool) (*Subscription, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(userID)
	// Cancel-then-replace: the old stream must end before the new window opens.
	if sess.sub != nil {
		sess.sub.stop()
		sess.sub = nil
	}
	sess.active = true
	sess.descending = descending
	sess.cursor = nil
	sess.loaded = 0
	sess.hasMore = true

	recs, err := s.repo.Page(ctx, userID, descending, s.pageSize, nil)
	if err != nil {
		return nil, fmt.Errorf("query beer records: %w", err)
	}
	sess.advance(recs, s.pageSize)

	sub := newSubscription(userID)
	sub.push(recs)
	sess.sub = sub
	return sub, nil
}

// ChangeSortOrder discards the user's cursor and subscription and re-issues
// the query with the new order, so no results from the old order can leak.
func (s *BeerStore) ChangeSortOrder(ctx context.Context, userID string, descending bool) (*Subscription, error) {
	return s.Query(ctx, userID, descending)
}

// LoadMore fetches the next page after the last row returned by the user's
// most recent Query or LoadMore. Zero new rows means the collection is
// exhausted: the empty result also clears the has-more flag.
func (s *BeerStore) LoadMore(ctx context.Context, userID string) ([]models.BeerRecord, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[userID]
	if sess == nil || !sess.active {
		return nil, ErrNoActiveQuery
	}
	if !sess.hasMore {
		return []models.BeerRecord{}, nil
	}

	recs, err := s.repo.Page(ctx, userID, sess.descending, s.pageSize, sess.cursor)
	if err != nil {
		return nil, fmt.Errorf("load more beer records: %w", err)
	}
	sess.advance(recs, s.pageSize)
	if recs == nil {
		recs = []models.BeerRecord{}
	}
	return recs, nil
}

// HasMore reports whether the user's active query believes more pages exist.
func (s *BeerStore) HasMore(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[userID]
	return sess != nil && sess.hasMore
}

// StopObserving releases the live subscription without discarding the
// pagination state of the user's most recent query. The handle is identity
// checked so a caller holding a replaced subscription cannot tear down a
// newer one.
func (s *BeerStore) StopObserving(sub *Subscription) {
	if sub == nil {
		return
	}
	s.mu.Lock()
	if sess := s.sessions[sub.userID]; sess != nil && sess.sub == sub {
		sess.sub = nil
	}
	s.mu.Unlock()
	sub.stop()
}

// refreshLocked re-reads the window the user has loaded so far and pushes the
// snapshot to their live subscription, keeping the view consistent after
// mutations. The pagination cursor is left untouched.
func (s *BeerStore) refreshLocked(ctx context.Context, userID string) {
	sess := s.sessions[userID]
	if sess == nil || sess.sub == nil {
		return
	}
	limit := sess.loaded
	if limit < s.pageSize {
		limit = s.pageSize
	}
	recs, err := s.repo.Page(ctx, userID, sess.descending, limit, nil)
	if err != nil {
		// The mutation already succeeded; a failed refresh only delays the
		// next snapshot.
		return
	}
	sess.sub.push(recs)
}
