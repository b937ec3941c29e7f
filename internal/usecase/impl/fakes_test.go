package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"ministry/config"
	"ministry/internal/domain/entity"
	"ministry/internal/domain/repository"
	"ministry/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{
		Secret:            "test-secret",
		Algorithm:         "HS256",
		AccessExpiryHours: 24,
		RefreshExpiryDays: 30,
	}
	cfg.Auth = config.AuthConfig{BcryptCost: 4, MinPasswordLength: 8}
	cfg.Stripe = config.StripeConfig{DefaultCurrency: "usd", FrontendURL: "https://example.org"}
	cfg.Ministry = config.MinistryConfig{Name: "Heavenly Nature Ministry", Slogan: "We are one", Scripture: "John 17:22"}
	cfg.Storage = config.StorageConfig{MaxUploadSizeMB: 1, AllowedFileTypes: []string{"pdf", ".MP3"}}
	cfg.Env.Version = "1.0.0"

	return cfg
}

// --- Users ---

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uuid.UUID]*entity.User{}, byEmail: map[string]uuid.UUID{}}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	out := *user

	return &out, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	out := *r.byID[id]

	return &out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[user.Email] = user.ID

	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.LastLogin = &at

	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.byID)), nil
}

func (r *fakeUserRepo) ListRecent(_ context.Context, limit int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*entity.User, 0, len(r.byID))
	for _, user := range r.byID {
		out := *user
		users = append(users, &out)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	if len(users) > limit {
		users = users[:limit]
	}

	return users, nil
}

func (r *fakeUserRepo) setActive(id uuid.UUID, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id].IsActive = active
}

func (r *fakeUserRepo) delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byEmail, r.byID[id].Email)
	delete(r.byID, id)
}

// --- Content ---

// fakeContentRepo keeps entities in memory and addresses fields by their json name,
// which matches the column names used by the services.
type fakeContentRepo[T any] struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*T
	order     []uuid.UUID
	counters  []string
	notFound  error
	unique    string // json name of a unique column, if any
	createErr error
}

func newFakeContentRepo[T any](notFound error, counters ...string) *fakeContentRepo[T] {
	return &fakeContentRepo[T]{items: map[uuid.UUID]*T{}, counters: counters, notFound: notFound}
}

func (r *fakeContentRepo[T]) Create(_ context.Context, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if r.unique != "" {
		value := fieldByJSON(item, r.unique).Interface()
		for _, existing := range r.items {
			if fieldByJSON(existing, r.unique).Interface() == value {
				return repository.ErrDuplicateKey
			}
		}
	}

	v := reflect.ValueOf(item).Elem()
	id := v.FieldByName("ID").Interface().(uuid.UUID)
	if id == uuid.Nil {
		id = uuid.New()
		v.FieldByName("ID").Set(reflect.ValueOf(id))
	}
	now := time.Now()
	v.FieldByName("CreatedAt").Set(reflect.ValueOf(now))
	v.FieldByName("UpdatedAt").Set(reflect.ValueOf(now))

	stored := *item
	r.items[id] = &stored
	r.order = append(r.order, id)

	return nil
}

func (r *fakeContentRepo[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, r.notFound
	}
	out := *item

	return &out, nil
}

func (r *fakeContentRepo[T]) List(_ context.Context, q repository.ListQuery) ([]*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := r.matching(q.Conditions)
	if q.OrderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := fieldByJSON(matched[i], q.OrderBy), fieldByJSON(matched[j], q.OrderBy)
			less := lessValue(a, b)
			if q.Descending {
				return lessValue(b, a)
			}

			return less
		})
	}

	start := min(q.Skip, len(matched))
	end := len(matched)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(matched))
	}

	return matched[start:end], nil
}

func (r *fakeContentRepo[T]) Count(_ context.Context, conditions ...repository.Condition) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.matching(conditions))), nil
}

func (r *fakeContentRepo[T]) IncrementCounter(_ context.Context, id uuid.UUID, column string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !slices.Contains(r.counters, column) {
		return repository.ErrUnknownCounter
	}
	item, ok := r.items[id]
	if !ok {
		return r.notFound
	}
	field := fieldByJSON(item, column)
	field.SetInt(field.Int() + delta)

	return nil
}

func (r *fakeContentRepo[T]) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, r.notFound
	}
	updated := *item
	for column, value := range fields {
		if err := assignField(&updated, column, value); err != nil {
			return nil, err
		}
	}
	reflect.ValueOf(&updated).Elem().FieldByName("UpdatedAt").Set(reflect.ValueOf(time.Now()))
	r.items[id] = &updated
	out := updated

	return &out, nil
}

func (r *fakeContentRepo[T]) all() []*T {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.matching(nil)
}

func (r *fakeContentRepo[T]) matching(conditions []repository.Condition) []*T {
	out := make([]*T, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if matchesAll(item, conditions) {
			copied := *item
			out = append(out, &copied)
		}
	}

	return out
}

func matchesAll(item any, conditions []repository.Condition) bool {
	for _, cond := range conditions {
		field := fieldByJSON(item, cond.Column)
		switch cond.Op {
		case repository.OpEq:
			if fmt.Sprint(field.Interface()) != fmt.Sprint(cond.Value) {
				return false
			}
		case repository.OpGte:
			if lessValue(field, reflect.ValueOf(cond.Value)) {
				return false
			}
		case repository.OpLte:
			if lessValue(reflect.ValueOf(cond.Value), field) {
				return false
			}
		case repository.OpHasTag:
			tags, _ := field.Interface().([]string)
			if !slices.Contains(tags, cond.Value.(string)) {
				return false
			}
		}
	}

	return true
}

func lessValue(a, b reflect.Value) bool {
	if a.Kind() == reflect.Pointer {
		if a.IsNil() {
			return !b.IsNil()
		}
		a = a.Elem()
	}
	if b.Kind() == reflect.Pointer {
		if b.IsNil() {
			return false
		}
		b = b.Elem()
	}
	if at, ok := a.Interface().(time.Time); ok {
		return at.Before(b.Interface().(time.Time))
	}

	return fmt.Sprint(a.Interface()) < fmt.Sprint(b.Interface())
}

func fieldByJSON(item any, column string) reflect.Value {
	v := reflect.ValueOf(item).Elem()
	t := v.Type()
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == column {
			return v.Field(i)
		}
	}
	if column == "created_at" {
		return v.FieldByName("CreatedAt")
	}
	panic(fmt.Sprintf("%s has no column %q", t.Name(), column))
}

func assignField(item any, column string, value any) error {
	field := fieldByJSON(item, column)
	rv := reflect.ValueOf(value)
	switch {
	case rv.Type().AssignableTo(field.Type()):
		field.Set(rv)
	case rv.Type().ConvertibleTo(field.Type()):
		field.Set(rv.Convert(field.Type()))
	case field.Kind() == reflect.Pointer && rv.Type().ConvertibleTo(field.Type().Elem()):
		ptr := reflect.New(field.Type().Elem())
		ptr.Elem().Set(rv.Convert(field.Type().Elem()))
		field.Set(ptr)
	default:
		return fmt.Errorf("cannot assign %T to %s", value, column)
	}

	return nil
}

type fakeBlogRepo struct {
	*fakeContentRepo[entity.BlogPost]
}

func newFakeBlogRepo() *fakeBlogRepo {
	repo := newFakeContentRepo[entity.BlogPost](repository.ErrBlogPostNotFound, "view_count")
	repo.unique = "slug"

	return &fakeBlogRepo{fakeContentRepo: repo}
}

func (r *fakeBlogRepo) FindBySlug(_ context.Context, slug string) (*entity.BlogPost, error) {
	for _, post := range r.all() {
		if post.Slug == slug {
			return post, nil
		}
	}

	return nil, repository.ErrBlogPostNotFound
}

// --- Donations ---

type fakeDonationRepo struct {
	*fakeContentRepo[entity.Donation]
	transitions int
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{fakeContentRepo: newFakeContentRepo[entity.Donation](repository.ErrDonationNotFound)}
}

func (r *fakeDonationRepo) FindBySessionID(_ context.Context, sessionID string) (*entity.Donation, error) {
	for _, donation := range r.all() {
		if donation.StripeSessionID == sessionID {
			return donation, nil
		}
	}

	return nil, repository.ErrDonationNotFound
}

func (r *fakeDonationRepo) FindByPaymentID(_ context.Context, paymentID string) (*entity.Donation, error) {
	for _, donation := range r.all() {
		if paymentID != "" && donation.StripePaymentID == paymentID {
			return donation, nil
		}
	}

	return nil, repository.ErrDonationNotFound
}

func (r *fakeDonationRepo) TransitionBySession(_ context.Context, sessionID string, t entity.PaymentTransition) (bool, error) {
	return r.transition(func(d *entity.Donation) bool { return d.StripeSessionID == sessionID }, sessionID, t)
}

func (r *fakeDonationRepo) TransitionByPaymentID(_ context.Context, paymentID string, t entity.PaymentTransition) (bool, error) {
	return r.transition(func(d *entity.Donation) bool { return d.StripePaymentID == paymentID }, paymentID, t)
}

// transition mirrors the conditional UPDATE: the state check and write happen under one lock.
func (r *fakeDonationRepo) transition(match func(*entity.Donation) bool, key string, t entity.PaymentTransition) (bool, error) {
	if key == "" {
		return false, nil
	}
	if !t.From.CanTransitionTo(t.To) {
		return false, fmt.Errorf("illegal transition %s -> %s", t.From, t.To)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, donation := range r.items {
		if !match(donation) || donation.PaymentStatus != t.From {
			continue
		}
		donation.PaymentStatus = t.To
		donation.UpdatedAt = t.At
		if t.StripePaymentID != "" {
			donation.StripePaymentID = t.StripePaymentID
		}
		if t.AmountTotal != 0 {
			donation.AmountTotal = t.AmountTotal
		}
		if t.Currency != "" {
			donation.Currency = t.Currency
		}
		if t.To == entity.PaymentStatusPaid {
			at := t.At
			donation.PaidAt = &at
		}
		r.transitions++

		return true, nil
	}

	return false, nil
}

// --- Services ---

type recordingNotifier struct {
	mu       sync.Mutex
	messages []sentMail
}

type sentMail struct {
	Recipient string
	Subject   string
	Body      string
}

func (n *recordingNotifier) Notify(_ context.Context, recipient, subject, htmlBody string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, sentMail{Recipient: recipient, Subject: subject, Body: htmlBody})
}

func (n *recordingNotifier) sent() []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]sentMail(nil), n.messages...)
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newMemoryRevoker() *memoryRevoker {
	return &memoryRevoker{revoked: map[string]time.Duration{}}
}

func (r *memoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ttl > 0 {
		r.revoked[tokenID] = ttl
	}

	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[tokenID]

	return ok, r.err
}

type mockPaymentGateway struct {
	mock.Mock
}

func (m *mockPaymentGateway) CreateCheckoutSession(ctx context.Context, req *service.CheckoutRequest) (*service.CheckoutSession, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*service.CheckoutSession)

	return session, args.Error(1)
}

func (m *mockPaymentGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*service.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(*service.CheckoutSession)

	return session, args.Error(1)
}

func (m *mockPaymentGateway) ParseWebhook(payload []byte, signatureHeader string) (*service.PaymentEvent, error) {
	args := m.Called(payload, signatureHeader)
	event, _ := args.Get(0).(*service.PaymentEvent)

	return event, args.Error(1)
}

type fakeQRCode struct{}

func (fakeQRCode) GenerateEventQR(eventID uuid.UUID) ([]byte, error) {
	return []byte("png:" + eventID.String()), nil
}

func (fakeQRCode) EventRSVPLink(eventID uuid.UUID) string {
	return "https://example.org/events/" + eventID.String() + "/rsvp"
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (s *memoryStorage) Upload(_ context.Context, key, _ string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if s.err != nil {
		return "", s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = data

	return "https://cdn.example.org/" + key, nil
}

type stubProbe struct {
	err error
}

func (p stubProbe) Ping(context.Context) error { return p.err }

func ptr[T any](v T) *T { return &v }
