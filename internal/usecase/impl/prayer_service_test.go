package impl

import (
	"context"
	"testing"

	"ministry/internal/domain/entity"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/domain/repository"
	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrayerService() (usecase.PrayerUsecase, *recordingNotifier) {
	notifier := &recordingNotifier{}
	srv := NewPrayerService(PrayerServiceParams{
		PrayerRepo: newFakeContentRepo[entity.PrayerRequest](repository.ErrPrayerRequestNotFound),
		Notifier:   notifier,
		Config:     newTestConfig(),
		Logger:     newDiscardLogger(),
	})

	return srv, notifier
}

func TestPrayerService_Submit(t *testing.T) {
	srv, notifier := newTestPrayerService()

	prayer, err := srv.Submit(context.Background(), &usecase.PrayerRequestInput{
		Name:        "Grace",
		Email:       "Grace@Example.org",
		RequestText: "Please pray for my family's health.",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PrayerStatusPending, prayer.Status)

	sent := notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "grace@example.org", sent[0].Recipient)
	assert.Contains(t, sent[0].Body, "Please pray for my family&#39;s health.")

	_, err = srv.Submit(context.Background(), &usecase.PrayerRequestInput{RequestText: "No email given here."})
	require.NoError(t, err)
	assert.Len(t, notifier.sent(), 1)
}

func TestPrayerService_ListPublic(t *testing.T) {
	srv, _ := newTestPrayerService()
	for _, in := range []*usecase.PrayerRequestInput{
		{Name: "Grace", Email: "grace@example.org", RequestText: "Shared with a name", PublicSharingAllowed: true},
		{Name: "John", Email: "john@example.org", RequestText: "Shared anonymously", PublicSharingAllowed: true, IsAnonymous: true},
		{Name: "Mary", Email: "mary@example.org", RequestText: "Kept private please"},
	} {
		_, err := srv.Submit(context.Background(), in)
		require.NoError(t, err)
	}

	page, err := srv.ListPublic(context.Background(), usecase.PageInput{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Total)

	byText := map[string]*entity.PrayerRequest{}
	for _, prayer := range page.Items {
		assert.Empty(t, prayer.Email)
		byText[prayer.RequestText] = prayer
	}
	assert.Equal(t, "Grace", byText["Shared with a name"].Name)
	assert.Empty(t, byText["Shared anonymously"].Name)

	all, err := srv.List(context.Background(), &usecase.ListPrayerRequestsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
}

func TestPrayerService_Update(t *testing.T) {
	srv, _ := newTestPrayerService()
	prayer, err := srv.Submit(context.Background(), &usecase.PrayerRequestInput{RequestText: "Healing for my mother"})
	require.NoError(t, err)

	updated, err := srv.Update(context.Background(), prayer.ID, &usecase.UpdatePrayerRequestInput{
		Status:    ptr(entity.PrayerStatusAnswered),
		Testimony: ptr("She is well again."),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PrayerStatusAnswered, updated.Status)
	assert.Equal(t, "She is well again.", updated.Testimony)

	answered, err := srv.List(context.Background(), &usecase.ListPrayerRequestsInput{Status: entity.PrayerStatusAnswered})
	require.NoError(t, err)
	assert.Equal(t, int64(1), answered.Total)

	_, err = srv.Update(context.Background(), prayer.ID, &usecase.UpdatePrayerRequestInput{Status: ptr(entity.PrayerStatus("forgotten"))})
	var validationErr *domainerrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = srv.Update(context.Background(), uuid.New(), &usecase.UpdatePrayerRequestInput{Testimony: ptr("x")})
	assert.True(t, errors.Is(err, domainerrors.ErrPrayerRequestNotFound))
}
