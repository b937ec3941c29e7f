package validator

import (
	"testing"

	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ReportsWireFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&usecase.RegisterInput{Email: "not-an-email", FullName: "Grace"})
	require.Error(t, err)

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []domainerrors.FieldError{
		{Field: "email", Message: "value is not a valid email address"},
		{Field: "password", Message: "field required"},
	}, verr.Fields)
}

func TestValidate_EmbeddedPageFields(t *testing.T) {
	v := New()

	err := v.Validate(&usecase.ListSermonsInput{PageInput: usecase.PageInput{Limit: 500}})

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "limit", verr.Fields[0].Field)
	assert.Equal(t, "must be less than or equal to 100", verr.Fields[0].Message)
}

func TestValidate_OneOfAndValid(t *testing.T) {
	v := New()

	err := v.Validate(&usecase.UpdateVolunteerInput{Status: "maybe"})
	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Fields[0].Field)
	assert.Equal(t, "value must be one of: pending, approved, declined", verr.Fields[0].Message)

	assert.NoError(t, v.Validate(&usecase.UpdateVolunteerInput{Status: "approved"}))
}

func TestValidate_RSVPAttendees(t *testing.T) {
	v := New()
	zero, two := 0, 2

	err := v.Validate(&usecase.RSVPInput{Name: "Grace", Email: "grace@example.org", NumberOfAttendees: &zero})
	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "number_of_attendees", verr.Fields[0].Field)
	assert.Equal(t, "must be greater than or equal to 1", verr.Fields[0].Message)

	assert.NoError(t, v.Validate(&usecase.RSVPInput{Name: "Grace", Email: "grace@example.org"}))
	assert.NoError(t, v.Validate(&usecase.RSVPInput{Name: "Grace", Email: "grace@example.org", NumberOfAttendees: &two}))
}
