package impl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"disciplined/internal/domain/entity"
	"disciplined/internal/domain/repository"
	"disciplined/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests. They enforce the
// same uniqueness rules the real PostgreSQL schema does, so the services
// exercise their conflict paths.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cloned := *user
	r.users[user.ID] = &cloned

	return nil
}

func (r *fakeUserRepo) FindUserByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cloned := *u

		return &cloned, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cloned := *u

			return &cloned, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings map[uuid.UUID]*entity.NotificationSettings
	fasting  map[uuid.UUID]*entity.FastingSchedule
	listErr  error
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings: make(map[uuid.UUID]*entity.NotificationSettings),
		fasting:  make(map[uuid.UUID]*entity.FastingSchedule),
	}
}

func (r *fakeSettingsRepo) UpsertSettings(_ context.Context, settings *entity.NotificationSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}
	cloned := *settings
	r.settings[settings.UserID] = &cloned

	return nil
}

func (r *fakeSettingsRepo) FindSettingsByUser(_ context.Context, userID uuid.UUID) (*entity.NotificationSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.settings[userID]; ok {
		cloned := *s

		return &cloned, nil
	}

	return nil, repository.ErrSettingsNotFound
}

func (r *fakeSettingsRepo) ListPushEnabledProfiles(_ context.Context) ([]*repository.NotificationProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var profiles []*repository.NotificationProfile
	for userID, s := range r.settings {
		if !s.PushEnabled {
			continue
		}
		settings := *s
		profile := &repository.NotificationProfile{Settings: &settings}
		if f, ok := r.fasting[userID]; ok {
			fasting := *f
			profile.Fasting = &fasting
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

func (r *fakeSettingsRepo) UpsertSchedule(_ context.Context, sched *entity.FastingSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sched.ID == uuid.Nil {
		sched.ID = uuid.New()
	}
	cloned := *sched
	r.fasting[sched.UserID] = &cloned

	return nil
}

func (r *fakeSettingsRepo) FindScheduleByUser(_ context.Context, userID uuid.UUID) (*entity.FastingSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fasting[userID]; ok {
		cloned := *f

		return &cloned, nil
	}

	return nil, repository.ErrFastingScheduleNotFound
}

type fakeDayRepo struct {
	mu          sync.Mutex
	days        map[uuid.UUID]*entity.DayRecord
	completions map[uuid.UUID]*entity.PillarCompletion
	findErr     error

	// beforeCreateDay runs ahead of each CreateDay, letting a test model a
	// concurrent writer sneaking its insert in first.
	beforeCreateDay func()
}

func newFakeDayRepo() *fakeDayRepo {
	return &fakeDayRepo{
		days:        make(map[uuid.UUID]*entity.DayRecord),
		completions: make(map[uuid.UUID]*entity.PillarCompletion),
	}
}

func (r *fakeDayRepo) CreateDay(_ context.Context, day *entity.DayRecord) error {
	if r.beforeCreateDay != nil {
		r.beforeCreateDay()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.days {
		if d.UserID == day.UserID && d.Date == day.Date {
			return repository.ErrDuplicateDay
		}
	}
	day.ID = uuid.New()
	day.CreatedAt = time.Now()
	cloned := *day
	r.days[day.ID] = &cloned

	return nil
}

// insertDay plants a row directly, bypassing CreateDay, the way another
// writer would between a caller's find and create.
func (r *fakeDayRepo) insertDay(userID uuid.UUID, date string) *entity.DayRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := &entity.DayRecord{ID: uuid.New(), UserID: userID, Date: date, CreatedAt: time.Now()}
	r.days[day.ID] = day

	return day
}

func (r *fakeDayRepo) dayCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.days)
}

func (r *fakeDayRepo) FindDay(_ context.Context, userID uuid.UUID, date string) (*entity.DayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, d := range r.days {
		if d.UserID == userID && d.Date == date {
			cloned := *d

			return &cloned, nil
		}
	}

	return nil, repository.ErrDayNotFound
}

func (r *fakeDayRepo) SeedCompletion(_ context.Context, completion *entity.PillarCompletion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.completions {
		if c.DayID == completion.DayID && c.Pillar == completion.Pillar {
			return nil
		}
	}
	completion.ID = uuid.New()
	cloned := *completion
	r.completions[completion.ID] = &cloned

	return nil
}

func (r *fakeDayRepo) FindCompletion(_ context.Context, dayID uuid.UUID, pillar entity.Pillar) (*entity.PillarCompletion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.completions {
		if c.DayID == dayID && c.Pillar == pillar {
			cloned := *c

			return &cloned, nil
		}
	}

	return nil, repository.ErrCompletionNotFound
}

func (r *fakeDayRepo) ListCompletions(_ context.Context, dayID uuid.UUID) ([]*entity.PillarCompletion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.PillarCompletion
	for _, c := range r.completions {
		if c.DayID == dayID {
			cloned := *c
			out = append(out, &cloned)
		}
	}

	return out, nil
}

func (r *fakeDayRepo) UpdateCompletion(_ context.Context, completionID uuid.UUID, completed bool, source entity.CompletionSource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.completions[completionID]
	if !ok {
		return repository.ErrCompletionNotFound
	}
	c.Completed = completed
	c.Source = source
	c.UpdatedAt = time.Now()

	return nil
}

func (r *fakeDayRepo) ListDaysInRange(_ context.Context, userID uuid.UUID, from, to string) ([]*repository.DayWithCompletions, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*repository.DayWithCompletions
	for _, d := range r.days {
		if d.UserID != userID || d.Date < from || d.Date > to {
			continue
		}
		day := *d
		dwc := &repository.DayWithCompletions{Day: &day}
		for _, c := range r.completions {
			if c.DayID == d.ID {
				cloned := *c
				dwc.Completions = append(dwc.Completions, &cloned)
			}
		}
		out = append(out, dwc)
	}

	return out, nil
}

type fakeEntryRepo struct {
	mu      sync.Mutex
	entries []*entity.PillarEntry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{}
}

func (r *fakeEntryRepo) CreateEntry(_ context.Context, entry *entity.PillarEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	cloned := *entry
	r.entries = append(r.entries, &cloned)

	return nil
}

func (r *fakeEntryRepo) CountEntries(_ context.Context, userID uuid.UUID, date string, pillar entity.Pillar) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, e := range r.entries {
		if e.UserID == userID && e.Date == date && e.Pillar == pillar {
			count++
		}
	}

	return count, nil
}

func (r *fakeEntryRepo) ListEntries(_ context.Context, userID uuid.UUID, date string) ([]*entity.PillarEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.PillarEntry
	for _, e := range r.entries {
		if e.UserID == userID && e.Date == date {
			cloned := *e
			out = append(out, &cloned)
		}
	}

	return out, nil
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[uuid.UUID]*entity.PushSubscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[uuid.UUID]*entity.PushSubscription)}
}

func (r *fakeSubscriptionRepo) CreateSubscription(_ context.Context, sub *entity.PushSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub.ID = uuid.New()
	sub.CreatedAt = time.Now()
	cloned := *sub
	r.subs[sub.UserID] = &cloned

	return nil
}

func (r *fakeSubscriptionRepo) FindSubscriptionByUser(_ context.Context, userID uuid.UUID) (*entity.PushSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.subs[userID]; ok {
		cloned := *s

		return &cloned, nil
	}

	return nil, repository.ErrSubscriptionNotFound
}

func (r *fakeSubscriptionRepo) DeleteSubscriptionsByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, userID)

	return nil
}

type fakeSendLogRepo struct {
	mu   sync.Mutex
	logs map[string]*entity.NotificationSendLog
}

func newFakeSendLogRepo() *fakeSendLogRepo {
	return &fakeSendLogRepo{logs: make(map[string]*entity.NotificationSendLog)}
}

func sendLogKey(userID uuid.UUID, kind, localDate string) string {
	return fmt.Sprintf("%s|%s|%s", userID, kind, localDate)
}

func (r *fakeSendLogRepo) SendLogExists(_ context.Context, userID uuid.UUID, kind, localDate string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.logs[sendLogKey(userID, kind, localDate)]

	return ok, nil
}

func (r *fakeSendLogRepo) CreateSendLog(_ context.Context, log *entity.NotificationSendLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sendLogKey(log.UserID, log.Kind, log.LocalDate)
	if _, ok := r.logs[key]; ok {
		return repository.ErrDuplicateSendLog
	}
	log.ID = uuid.New()
	cloned := *log
	r.logs[key] = &cloned

	return nil
}

func (r *fakeSendLogRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.logs)
}

// fakeTransport records sends and can fail on demand.
type fakeTransport struct {
	mu        sync.Mutex
	sent      []*service.PushMessage
	sendErr   error
	publicKey string
}

func (t *fakeTransport) Send(_ context.Context, _ *entity.PushSubscription, msg *service.PushMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sendErr != nil {
		return t.sendErr
	}
	t.sent = append(t.sent, msg)

	return nil
}

func (t *fakeTransport) PublicKey() string {
	return t.publicKey
}

func (t *fakeTransport) sentCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.sent)
}

// fakePublisher records published day-updated events.
type fakePublisher struct {
	mu     sync.Mutex
	events []*service.DayUpdatedEvent
}

func (p *fakePublisher) PublishDayUpdated(_ context.Context, event *service.DayUpdatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error {
	return nil
}

// fakeTxManager runs the callback directly against the backing fakes.
type fakeTxManager struct {
	subs *fakeSubscriptionRepo
	days *fakeDayRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *fakeTxManager) Subscriptions() repository.PushSubscriptionRepository {
	return m.subs
}

func (m *fakeTxManager) Days() repository.DayRepository {
	return m.days
}

// fakeHasher avoids bcrypt's cost in unit tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues deterministic tokens.
type fakeTokenService struct{}

func (fakeTokenService) GenerateTokens(userID uuid.UUID) (string, string, error) {
	return "access:" + userID.String(), "refresh:" + userID.String(), nil
}

func (fakeTokenService) ValidateAccessToken(token string) (*service.TokenClaims, error) {
	return parseFakeToken(token, "access")
}

func (fakeTokenService) ValidateRefreshToken(token string) (*service.TokenClaims, error) {
	return parseFakeToken(token, "refresh")
}

func (fakeTokenService) GetRefreshTokenDuration() time.Duration {
	return time.Hour
}

func parseFakeToken(token, wantType string) (*service.TokenClaims, error) {
	prefix := wantType + ":"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return nil, fmt.Errorf("malformed %s token", wantType)
	}
	userID, err := uuid.Parse(token[len(prefix):])
	if err != nil {
		return nil, err
	}

	return &service.TokenClaims{UserID: userID, Type: wantType}, nil
}
