package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
)

func newEnquiryFixture() (EnquiryService, *fakeEnquiryStore) {
	store := newFakeEnquiryStore()
	return NewEnquiryService(store), store
}

func TestCreateEnquiryDefaults(t *testing.T) {
	svc, store := newEnquiryFixture()

	enquiry, err := svc.Create(context.Background(), &dto.CreateEnquiryRequest{
		FullName:     "  Ravi Kumar  ",
		MobileNumber: " 9876543210 ",
		ProgramName:  "NDA Academy ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", enquiry.FullName)
	assert.Equal(t, "9876543210", enquiry.MobileNumber)
	assert.Equal(t, "NDA Academy", enquiry.ProgramName)
	assert.Equal(t, models.EnquiryPending, enquiry.Status)
	assert.Equal(t, "mobile_app", enquiry.Source)

	stored, err := store.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestCreateEnquiryKeepsExplicitSource(t *testing.T) {
	svc, _ := newEnquiryFixture()

	enquiry, err := svc.Create(context.Background(), &dto.CreateEnquiryRequest{
		FullName:     "Ravi Kumar",
		MobileNumber: "9876543210",
		ProgramName:  "NDA Academy",
		Source:       "website",
	})
	require.NoError(t, err)
	assert.Equal(t, "website", enquiry.Source)
}

func TestListEnquiriesFilters(t *testing.T) {
	svc, store := newEnquiryFixture()
	seedEnquiry := func(name, mobile string, status models.EnquiryStatus) {
		store.nextID++
		store.enquiries[store.nextID] = &models.Enquiry{
			ID: store.nextID, FullName: name, MobileNumber: mobile,
			ProgramName: "NDA Academy", Status: status, Source: "mobile_app",
		}
	}
	seedEnquiry("Ravi Kumar", "9876543210", models.EnquiryPending)
	seedEnquiry("Anita Sharma", "9123456789", models.EnquiryContacted)
	seedEnquiry("Ravi Verma", "9000000000", models.EnquiryContacted)

	contacted := models.EnquiryContacted
	out, err := svc.List(context.Background(), &dto.EnquiryListFilter{Status: &contacted})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = svc.List(context.Background(), &dto.EnquiryListFilter{Search: "Ravi"})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = svc.List(context.Background(), &dto.EnquiryListFilter{Status: &contacted, Search: "Ravi"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Ravi Verma", out[0].FullName)
}

func TestDeleteEnquiry(t *testing.T) {
	svc, store := newEnquiryFixture()

	enquiry, err := svc.Create(context.Background(), &dto.CreateEnquiryRequest{
		FullName:     "Ravi Kumar",
		MobileNumber: "9876543210",
		ProgramName:  "NDA Academy",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), enquiry.ID))
	assert.Empty(t, store.enquiries)

	err = svc.Delete(context.Background(), enquiry.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
