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

func TestVolunteerService(t *testing.T) {
	notifier := &recordingNotifier{}
	srv := NewVolunteerService(VolunteerServiceParams{
		VolunteerRepo: newFakeContentRepo[entity.Volunteer](repository.ErrVolunteerNotFound),
		Notifier:      notifier,
		Config:        newTestConfig(),
		Logger:        newDiscardLogger(),
	})

	volunteer, err := srv.Apply(context.Background(), &usecase.VolunteerInput{
		FirstName:       "Grace",
		LastName:        "Akol",
		Email:           "grace@example.org",
		Phone:           "+211900000000",
		AreasOfInterest: []string{"Children's Ministry", "Worship"},
		Availability:    "Weekends",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VolunteerStatusPending, volunteer.Status)

	sent := notifier.sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "Grace")
	assert.Contains(t, sent[0].Body, "Worship")

	approved, err := srv.UpdateStatus(context.Background(), volunteer.ID, &usecase.UpdateVolunteerInput{Status: entity.VolunteerStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, entity.VolunteerStatusApproved, approved.Status)

	pending, err := srv.List(context.Background(), &usecase.ListVolunteersInput{Status: entity.VolunteerStatusPending})
	require.NoError(t, err)
	assert.Zero(t, pending.Total)

	_, err = srv.UpdateStatus(context.Background(), volunteer.ID, &usecase.UpdateVolunteerInput{Status: "maybe"})
	var validationErr *domainerrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = srv.UpdateStatus(context.Background(), uuid.New(), &usecase.UpdateVolunteerInput{Status: entity.VolunteerStatusDeclined})
	assert.True(t, errors.Is(err, domainerrors.ErrVolunteerNotFound))
}
