package api

import (
	"context"

	"ministry/internal/domain/entity"
	"ministry/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.TokenOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.TokenOutput)

	return out, args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.TokenOutput)

	return out, args.Error(1)
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.TokenOutput)

	return out, args.Error(1)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *mockAuthUsecase) Authenticate(ctx context.Context, accessToken string) (*usecase.Principal, error) {
	args := m.Called(ctx, accessToken)
	out, _ := args.Get(0).(*usecase.Principal)

	return out, args.Error(1)
}

func (m *mockAuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).(*entity.User)

	return out, args.Error(1)
}

func (m *mockAuthUsecase) EnsureAdmin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockSermonUsecase struct {
	mock.Mock
}

func (m *mockSermonUsecase) List(ctx context.Context, input *usecase.ListSermonsInput) (*usecase.Page[entity.Sermon], error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.Page[entity.Sermon])

	return out, args.Error(1)
}

func (m *mockSermonUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Sermon, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*entity.Sermon)

	return out, args.Error(1)
}

func (m *mockSermonUsecase) RecordDownload(ctx context.Context, id uuid.UUID) (*usecase.DownloadOutput, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*usecase.DownloadOutput)

	return out, args.Error(1)
}

func (m *mockSermonUsecase) Create(ctx context.Context, input *usecase.CreateSermonInput) (*entity.Sermon, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*entity.Sermon)

	return out, args.Error(1)
}

func (m *mockSermonUsecase) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateSermonInput) (*entity.Sermon, error) {
	args := m.Called(ctx, id, input)
	out, _ := args.Get(0).(*entity.Sermon)

	return out, args.Error(1)
}

type mockMinistryUsecase struct {
	mock.Mock
}

func (m *mockMinistryUsecase) Info(ctx context.Context) *usecase.MinistryInfo {
	out, _ := m.Called(ctx).Get(0).(*usecase.MinistryInfo)

	return out
}

func (m *mockMinistryUsecase) Health(ctx context.Context) *usecase.HealthOutput {
	out, _ := m.Called(ctx).Get(0).(*usecase.HealthOutput)

	return out
}

func (m *mockMinistryUsecase) Banner(ctx context.Context) *usecase.BannerOutput {
	out, _ := m.Called(ctx).Get(0).(*usecase.BannerOutput)

	return out
}

type mockDonationUsecase struct {
	mock.Mock
}

func (m *mockDonationUsecase) CreateCheckout(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.CheckoutOutput)

	return out, args.Error(1)
}

func (m *mockDonationUsecase) GetStatus(ctx context.Context, sessionID string) (*usecase.PaymentStatusOutput, error) {
	args := m.Called(ctx, sessionID)
	out, _ := args.Get(0).(*usecase.PaymentStatusOutput)

	return out, args.Error(1)
}

func (m *mockDonationUsecase) HandleWebhook(ctx context.Context, payload []byte, signature string) (*usecase.WebhookOutput, error) {
	args := m.Called(ctx, payload, signature)
	out, _ := args.Get(0).(*usecase.WebhookOutput)

	return out, args.Error(1)
}

func (m *mockDonationUsecase) List(ctx context.Context, input *usecase.ListDonationsInput) (*usecase.Page[entity.Donation], error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.Page[entity.Donation])

	return out, args.Error(1)
}

type stubLimiter struct {
	allow bool
}

func (l stubLimiter) Allow(context.Context, string) bool {
	return l.allow
}
