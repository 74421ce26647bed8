//go:build !integration

package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"

	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/adapter"
	"aktau-afisha-bot/internal/domain/ports/repository"
)

// --- EventRepository ---

type mockEventRepo struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*model.Event

	updateCalls int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[int64]*model.Event)}
}

func (m *mockEventRepo) Create(ctx context.Context, tx repository.Tx, e *model.Event) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	cp := *e
	m.events[e.ID] = &cp
	return e.ID, nil
}

func (m *mockEventRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockEventRepo) UpdateField(ctx context.Context, tx repository.Tx, id int64, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	e, ok := m.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	switch field {
	case model.EventFieldTitle:
		e.Title = value
	case model.EventFieldDescription:
		e.Description = value
	case model.EventFieldLocation:
		e.Location = value
	case model.EventFieldDate:
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return err
		}
		e.Date = t
	default:
		return domain.ErrUnknownField
	}
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) ListUpcoming(ctx context.Context, tx repository.Tx, now time.Time, limit int) ([]*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Event, 0)
	for _, e := range m.events {
		if e.Date.After(now) && len(out) < limit {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockEventRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Event, 0, len(m.events))
	for _, e := range m.events {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockEventRepo) SearchByCategory(ctx context.Context, tx repository.Tx, category string) ([]*model.Event, error) {
	return nil, nil
}

func (m *mockEventRepo) SearchByDate(ctx context.Context, tx repository.Tx, day time.Time) ([]*model.Event, error) {
	return nil, nil
}

func (m *mockEventRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events), nil
}

// --- FavoriteRepository ---

type mockFavoriteRepo struct {
	mu    sync.Mutex
	pairs map[[2]int64]struct{}
}

func newMockFavoriteRepo() *mockFavoriteRepo {
	return &mockFavoriteRepo{pairs: make(map[[2]int64]struct{})}
}

func (m *mockFavoriteRepo) Add(ctx context.Context, tx repository.Tx, userID, eventID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, eventID}
	if _, ok := m.pairs[key]; ok {
		return domain.ErrAlreadyExists
	}
	m.pairs[key] = struct{}{}
	return nil
}

func (m *mockFavoriteRepo) ListByUser(ctx context.Context, tx repository.Tx, userID int64) ([]*model.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Favorite, 0)
	for key := range m.pairs {
		if key[0] == userID {
			out = append(out, &model.Favorite{UserID: key[0], EventID: key[1]})
		}
	}
	return out, nil
}

func (m *mockFavoriteRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pairs), nil
}

// --- SubscriberUseCase stub (for broadcast) ---

type stubSubscribers struct {
	ids []int64
	err error
}

func (s *stubSubscribers) Subscribe(ctx context.Context, userID int64) (bool, error) {
	return false, nil
}

func (s *stubSubscribers) Recipients(ctx context.Context) ([]int64, error) {
	return s.ids, s.err
}

// --- Messenger ---

type mockMessenger struct {
	mu      sync.Mutex
	sends   []int64
	failFor map[int64]error
}

func newMockMessenger() *mockMessenger {
	return &mockMessenger{failFor: make(map[int64]error)}
}

func (m *mockMessenger) SendMessage(ctx context.Context, chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, chatID)
	if err, ok := m.failFor[chatID]; ok {
		return err
	}
	return nil
}

func (m *mockMessenger) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	return m.SendMessage(ctx, chatID, text)
}

func (m *mockMessenger) SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error {
	return m.SendMessage(ctx, chatID, text)
}

func (m *mockMessenger) attempts() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int64, len(m.sends))
	copy(out, m.sends)
	return out
}

// --- TransactionManager ---

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.calls++
	return fn(ctx, repository.NoTX)
}

var _ adapter.Messenger = (*mockMessenger)(nil)
var _ repository.EventRepository = (*mockEventRepo)(nil)
var _ repository.FavoriteRepository = (*mockFavoriteRepo)(nil)
var _ repository.TransactionManager = (*mockTxManager)(nil)
var _ SubscriberUseCase = (*stubSubscribers)(nil)
