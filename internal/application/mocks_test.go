//go:build !integration

package application

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"aktau-afisha-bot/internal/dialog"
	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/adapter"
	"aktau-afisha-bot/internal/infra/i18n"
	"aktau-afisha-bot/internal/usecase"
)

// recorderBot captures everything the facade sends.
type recorderBot struct {
	mu   sync.Mutex
	msgs []string
}

func (b *recorderBot) record(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, text)
}

func (b *recorderBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	b.record(text)
	return nil
}

func (b *recorderBot) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	b.record(text)
	return nil
}

func (b *recorderBot) SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]string) error {
	b.record(text)
	return nil
}

func (b *recorderBot) last() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.msgs) == 0 {
		return ""
	}
	return b.msgs[len(b.msgs)-1]
}

func (b *recorderBot) all() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.msgs))
	copy(out, b.msgs)
	return out
}

// fakeEventUC is an in-memory stand-in for the event use case.
type fakeEventUC struct {
	mu      sync.Mutex
	nextID  int64
	events  map[int64]*model.Event
	updates []string

	lastCategory string
	lastDate     time.Time
	searchHits   []*model.Event
}

func newFakeEventUC() *fakeEventUC {
	return &fakeEventUC{events: make(map[int64]*model.Event)}
}

func (f *fakeEventUC) Create(ctx context.Context, title, description string, date time.Time, location string) (*model.Event, error) {
	e, err := model.NewEvent(title, description, date, location)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.ID = f.nextID
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeEventUC) Get(ctx context.Context, id int64) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventUC) UpdateField(ctx context.Context, id int64, field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return domain.ErrNotFound
	}
	f.updates = append(f.updates, field+"="+value)
	if field == model.EventFieldTitle {
		f.events[id].Title = value
	}
	return nil
}

func (f *fakeEventUC) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventUC) Upcoming(ctx context.Context, limit int) ([]*model.Event, error) {
	return f.All(ctx)
}

func (f *fakeEventUC) All(ctx context.Context) ([]*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventUC) SearchByCategory(ctx context.Context, category string) ([]*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCategory = category
	return f.searchHits, nil
}

func (f *fakeEventUC) SearchByDate(ctx context.Context, day time.Time) ([]*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastDate = day
	return f.searchHits, nil
}

func (f *fakeEventUC) created() []*model.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out
}

type fakePromoUC struct {
	mu     sync.Mutex
	nextID int64
	promos map[int64]*model.Promotion
}

func newFakePromoUC() *fakePromoUC {
	return &fakePromoUC{promos: make(map[int64]*model.Promotion)}
}

func (f *fakePromoUC) Create(ctx context.Context, title, description, venue, validUntil string) (*model.Promotion, error) {
	p, err := model.NewPromotion(title, description, venue, validUntil)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.promos[p.ID] = p
	return p, nil
}

func (f *fakePromoUC) Get(ctx context.Context, id int64) (*model.Promotion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.promos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePromoUC) UpdateField(ctx context.Context, id int64, field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.promos[id]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (f *fakePromoUC) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.promos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.promos, id)
	return nil
}

func (f *fakePromoUC) Active(ctx context.Context) ([]*model.Promotion, error) {
	return f.All(ctx)
}

func (f *fakePromoUC) All(ctx context.Context) ([]*model.Promotion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Promotion, 0, len(f.promos))
	for _, p := range f.promos {
		out = append(out, p)
	}
	return out, nil
}

type fakeFeedbackUC struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeFeedbackUC) Leave(ctx context.Context, userID int64, message string) (int64, error) {
	if strings.TrimSpace(message) == "" {
		return 0, domain.ErrInvalidArgument
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return int64(len(f.messages)), nil
}

type fakeFavoriteUC struct {
	mu     sync.Mutex
	events *fakeEventUC
	pairs  map[[2]int64]struct{}
}

func newFakeFavoriteUC(events *fakeEventUC) *fakeFavoriteUC {
	return &fakeFavoriteUC{events: events, pairs: make(map[[2]int64]struct{})}
}

func (f *fakeFavoriteUC) Add(ctx context.Context, userID, eventID int64) (bool, error) {
	if _, err := f.events.Get(ctx, eventID); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{userID, eventID}
	if _, ok := f.pairs[key]; ok {
		return false, nil
	}
	f.pairs[key] = struct{}{}
	return true, nil
}

func (f *fakeFavoriteUC) List(ctx context.Context, userID int64) ([]*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Event, 0)
	for key := range f.pairs {
		if key[0] != userID {
			continue
		}
		if e, err := f.events.Get(ctx, key[1]); err == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeSubUC struct {
	mu  sync.Mutex
	ids map[int64]struct{}
}

func newFakeSubUC() *fakeSubUC { return &fakeSubUC{ids: make(map[int64]struct{})} }

func (f *fakeSubUC) Subscribe(ctx context.Context, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ids[userID]; ok {
		return false, nil
	}
	f.ids[userID] = struct{}{}
	return true, nil
}

func (f *fakeSubUC) Recipients(ctx context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int64, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	return out, nil
}

type fakeLangUC struct {
	mu    sync.Mutex
	langs map[int64]string
}

func newFakeLangUC() *fakeLangUC { return &fakeLangUC{langs: make(map[int64]string)} }

func (f *fakeLangUC) Set(ctx context.Context, userID int64, lang string) error {
	if !model.IsSupportedLang(lang) {
		return domain.ErrInvalidArgument
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.langs[userID] = lang
	return nil
}

func (f *fakeLangUC) Get(ctx context.Context, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if lang, ok := f.langs[userID]; ok {
		return lang, nil
	}
	return model.DefaultLang, nil
}

type fakeStatsUC struct{ stats usecase.Stats }

func (f *fakeStatsUC) Totals(ctx context.Context) (*usecase.Stats, error) {
	st := f.stats
	return &st, nil
}

type fakeBroadcastUC struct {
	mu    sync.Mutex
	texts []string
	sent  int
}

func (f *fakeBroadcastUC) Broadcast(ctx context.Context, text string) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return f.sent, 0, nil
}

var (
	_ adapter.Messenger         = (*recorderBot)(nil)
	_ usecase.EventUseCase      = (*fakeEventUC)(nil)
	_ usecase.PromotionUseCase  = (*fakePromoUC)(nil)
	_ usecase.FeedbackUseCase   = (*fakeFeedbackUC)(nil)
	_ usecase.FavoriteUseCase   = (*fakeFavoriteUC)(nil)
	_ usecase.SubscriberUseCase = (*fakeSubUC)(nil)
	_ usecase.LanguageUseCase   = (*fakeLangUC)(nil)
	_ usecase.StatsUseCase      = (*fakeStatsUC)(nil)
	_ usecase.BroadcastUseCase  = (*fakeBroadcastUC)(nil)
)

// testBot wires the facade to in-memory fakes behind a real dispatcher.
type testBot struct {
	d     *dialog.Dispatcher
	store *dialog.MemoryStore
	bot   *recorderBot

	events    *fakeEventUC
	promos    *fakePromoUC
	feedback  *fakeFeedbackUC
	favorites *fakeFavoriteUC
	subs      *fakeSubUC
	langs     *fakeLangUC
	broadcast *fakeBroadcastUC
}

func newTestBot(t *testing.T, adminIDs ...int64) *testBot {
	t.Helper()
	logger := zerolog.Nop()

	bundle, err := i18n.NewBundle(i18n.LocalesFS, model.LangRU, model.LangKZ, model.LangEN)
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}

	tb := &testBot{
		store:     dialog.NewMemoryStore(),
		bot:       &recorderBot{},
		events:    newFakeEventUC(),
		promos:    newFakePromoUC(),
		feedback:  &fakeFeedbackUC{},
		subs:      newFakeSubUC(),
		langs:     newFakeLangUC(),
		broadcast: &fakeBroadcastUC{sent: 7},
	}
	tb.favorites = newFakeFavoriteUC(tb.events)

	facade := NewBotFacade(Deps{
		Auth:        NewAuthorizationPolicy(adminIDs),
		Sessions:    tb.store,
		Bot:         tb.bot,
		I18n:        bundle,
		EventUC:     tb.events,
		PromoUC:     tb.promos,
		FeedbackUC:  tb.feedback,
		FavoriteUC:  tb.favorites,
		SubUC:       tb.subs,
		LangUC:      tb.langs,
		StatsUC:     &fakeStatsUC{stats: usecase.Stats{Users: 5, Subscribers: 3, Events: 2, Promotions: 1, Favorites: 4}},
		BroadcastUC: tb.broadcast,
		Log:         &logger,
	})
	tb.d = dialog.NewDispatcher(tb.store, &logger)
	facade.Register(tb.d)
	return tb
}

func (tb *testBot) command(t *testing.T, userID int64, name, args string) {
	t.Helper()
	ev := dialog.Event{UserID: userID, ChatID: userID, Kind: dialog.EventCommand, Command: name, Args: args}
	if err := tb.d.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("/%s: %v", name, err)
	}
}

func (tb *testBot) text(t *testing.T, userID int64, text string) {
	t.Helper()
	ev := dialog.Event{UserID: userID, ChatID: userID, Kind: dialog.EventText, Text: text}
	if err := tb.d.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("text %q: %v", text, err)
	}
}

func (tb *testBot) callback(t *testing.T, userID int64, data string) {
	t.Helper()
	ev := dialog.Event{UserID: userID, ChatID: userID, Kind: dialog.EventCallback, Data: data}
	if err := tb.d.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("callback %q: %v", data, err)
	}
}

func (tb *testBot) session(t *testing.T, userID int64) *dialog.Session {
	t.Helper()
	sess, err := tb.store.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	return sess
}
