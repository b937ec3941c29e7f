package postgres

import (
	"context"

	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/errors"
	"ministry/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// donationRepository stores donations and applies payment transitions as conditional updates.
type donationRepository struct {
	*contentRepository[entity.Donation, model.DonationModel]
}

// NewDonationRepository is the constructor for donationRepository.
func NewDonationRepository(db *gorm.DB) repository.DonationRepository {
	return &donationRepository{
		contentRepository: newContentRepository(db, contentMapping[entity.Donation, model.DonationModel]{
			name:     "donation",
			notFound: repository.ErrDonationNotFound,
			toDomain: toDonationDomain,
			toModel:  fromDonationDomain,
			prepare:  func(m *model.DonationModel) { m.ID = ensureID(m.ID) },
			assign: func(e *entity.Donation, m *model.DonationModel) {
				e.ID, e.CreatedAt, e.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
			},
		}),
	}
}

// FindBySessionID retrieves the donation created for a checkout session.
func (repo *donationRepository) FindBySessionID(ctx context.Context, sessionID string) (*entity.Donation, error) {
	return repo.findBy(ctx, "stripe_session_id", sessionID)
}

// FindByPaymentID retrieves the donation confirmed with a provider payment id.
func (repo *donationRepository) FindByPaymentID(ctx context.Context, paymentID string) (*entity.Donation, error) {
	return repo.findBy(ctx, "stripe_payment_id", paymentID)
}

func (repo *donationRepository) findBy(ctx context.Context, keyColumn, key string) (*entity.Donation, error) {
	if key == "" {
		return nil, repository.ErrDonationNotFound
	}

	var m model.DonationModel
	if err := repo.db.WithContext(ctx).Where(keyColumn+" = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDonationNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find donation by "+keyColumn)
	}

	return toDonationDomain(&m), nil
}

// TransitionBySession applies t to the donation for sessionID if it is still in t.From.
func (repo *donationRepository) TransitionBySession(ctx context.Context, sessionID string, t entity.PaymentTransition) (bool, error) {
	return repo.transition(ctx, "stripe_session_id", sessionID, t)
}

// TransitionByPaymentID applies t to the donation for paymentID if it is still in t.From.
func (repo *donationRepository) TransitionByPaymentID(ctx context.Context, paymentID string, t entity.PaymentTransition) (bool, error) {
	return repo.transition(ctx, "stripe_payment_id", paymentID, t)
}

// transition relies on the WHERE clause on payment_status so that concurrent
// webhook and polling paths cannot both apply the same move.
func (repo *donationRepository) transition(ctx context.Context, keyColumn, key string, t entity.PaymentTransition) (bool, error) {
	if key == "" {
		return false, nil
	}
	if !t.From.CanTransitionTo(t.To) {
		return false, errors.Errorf("payment transition %s -> %s is not allowed", t.From, t.To)
	}

	updates := map[string]any{
		"payment_status": string(t.To),
		"updated_at":     t.At,
	}
	if t.StripePaymentID != "" {
		updates["stripe_payment_id"] = t.StripePaymentID
	}
	if t.AmountTotal > 0 {
		updates["amount_total"] = t.AmountTotal
	}
	if t.Currency != "" {
		updates["currency"] = t.Currency
	}
	if t.To == entity.PaymentStatusPaid {
		updates["paid_at"] = timePtr(t.At)
	}

	result := repo.db.WithContext(ctx).Model(&model.DonationModel{}).
		Where(keyColumn+" = ? AND payment_status = ?", key, string(t.From)).
		Updates(updates)
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to transition donation")
	}

	return result.RowsAffected > 0, nil
}

// --- Mapper Functions ---

func toDonationDomain(data *model.DonationModel) *entity.Donation {
	if data == nil {
		return nil
	}

	return &entity.Donation{
		ID:              data.ID,
		Amount:          data.Amount,
		Currency:        data.Currency,
		Category:        entity.DonationCategory(data.Category),
		Frequency:       entity.DonationFrequency(data.Frequency),
		DonorName:       data.DonorName,
		DonorEmail:      data.DonorEmail,
		DonorPhone:      data.DonorPhone,
		Message:         data.Message,
		IsAnonymous:     data.IsAnonymous,
		StripeSessionID: data.StripeSessionID,
		StripePaymentID: data.StripePaymentID,
		PaymentStatus:   entity.PaymentStatus(data.PaymentStatus),
		AmountTotal:     data.AmountTotal,
		PaidAt:          data.PaidAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromDonationDomain(data *entity.Donation) *model.DonationModel {
	if data == nil {
		return nil
	}

	return &model.DonationModel{
		ID:              data.ID,
		Amount:          data.Amount,
		Currency:        data.Currency,
		Category:        string(data.Category),
		Frequency:       string(data.Frequency),
		DonorName:       data.DonorName,
		DonorEmail:      data.DonorEmail,
		DonorPhone:      data.DonorPhone,
		Message:         data.Message,
		IsAnonymous:     data.IsAnonymous,
		StripeSessionID: data.StripeSessionID,
		StripePaymentID: data.StripePaymentID,
		PaymentStatus:   string(data.PaymentStatus),
		AmountTotal:     data.AmountTotal,
		PaidAt:          data.PaidAt,
	}
}
