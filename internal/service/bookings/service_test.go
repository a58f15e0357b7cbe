package bookings

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/domain"
	bookingRepo "github.com/m04kA/consultation-booking/internal/infra/storage/booking"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	"github.com/m04kA/consultation-booking/internal/service/bookings/models"
	"github.com/m04kA/consultation-booking/pkg/logger"
	"github.com/m04kA/consultation-booking/pkg/types"
)

func seed(t *testing.T, bookings ...domain.Booking) (*Service, *bookingRepo.Repository) {
	t.Helper()
	repo := bookingRepo.NewRepository(documents.NewMemoryStore(), logger.NewNop())
	_, err := repo.Update(context.Background(), func(domain.Ledger) (domain.Ledger, error) {
		return bookings, nil
	})
	require.NoError(t, err)
	return NewService(repo, logger.NewNop()), repo
}

func sample() []domain.Booking {
	return []domain.Booking{
		{CustomerName: "Carla", DateKey: "2025-03-12", TimeSlot: "09:00", ServiceTitle: "Visa & Residence Permit"},
		{CustomerName: "anna", DateKey: "2025-03-10", TimeSlot: "14:00", ServiceTitle: "Degree Recognition (ZAB)"},
		{CustomerName: "Bob", DateKey: "2025-03-10", TimeSlot: "09:30", ServiceTitle: "Integration Course Application"},
	}
}

func TestService_List_Sorting(t *testing.T) {
	s, _ := seed(t, sample()...)

	resp, err := s.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 3)
	// по умолчанию дата по убыванию
	assert.Equal(t, "Carla", resp.Bookings[0].Name)
	assert.Equal(t, "anna", resp.Bookings[1].Name)
	assert.Equal(t, "Bob", resp.Bookings[2].Name)

	resp, err = s.List(context.Background(), &models.ListBookingsRequest{SortBy: "name", Direction: "asc"})
	require.NoError(t, err)
	assert.Equal(t, "anna", resp.Bookings[0].Name)
	assert.Equal(t, "Bob", resp.Bookings[1].Name)
	assert.Equal(t, "Carla", resp.Bookings[2].Name)

	resp, err = s.List(context.Background(), &models.ListBookingsRequest{SortBy: "service", Direction: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "Visa & Residence Permit", resp.Bookings[0].ConsultationTitle)
}

func TestService_List_Search(t *testing.T) {
	s, _ := seed(t, sample()...)

	resp, err := s.List(context.Background(), &models.ListBookingsRequest{Search: "ZAB"})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "anna", resp.Bookings[0].Name)

	resp, err = s.List(context.Background(), &models.ListBookingsRequest{Search: "2025-03-10"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	resp, err = s.List(context.Background(), &models.ListBookingsRequest{Search: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	assert.NotNil(t, resp.Bookings)
}

func TestService_List_Pagination(t *testing.T) {
	var many []domain.Booking
	for i := 0; i < 23; i++ {
		many = append(many, domain.Booking{
			CustomerName: fmt.Sprintf("Client %02d", i),
			DateKey:      types.DateKey(fmt.Sprintf("2025-04-%02d", i+1)),
			TimeSlot:     "09:00",
			ServiceTitle: "Visa & Residence Permit",
		})
	}
	s, _ := seed(t, many...)

	resp, err := s.List(context.Background(), &models.ListBookingsRequest{Page: 3, SortBy: "date", Direction: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 23, resp.Total)
	require.Len(t, resp.Bookings, 3)
	assert.Equal(t, "Client 20", resp.Bookings[0].Name)

	resp, err = s.List(context.Background(), &models.ListBookingsRequest{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}

func TestService_List_InvalidInput(t *testing.T) {
	s, _ := seed(t)

	_, err := s.List(context.Background(), &models.ListBookingsRequest{SortBy: "price"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.List(context.Background(), &models.ListBookingsRequest{Direction: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel(t *testing.T) {
	s, repo := seed(t, sample()...)

	require.NoError(t, s.Cancel(context.Background(), "2025-03-10", "14:00"))

	ledger, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, ledger, 2)
	_, found := ledger.Find("2025-03-10", "14:00")
	assert.False(t, found)

	assert.ErrorIs(t, s.Cancel(context.Background(), "2025-03-10", "14:00"), ErrBookingNotFound)
	assert.ErrorIs(t, s.Cancel(context.Background(), "bad", "14:00"), ErrInvalidInput)
}

func TestService_Get(t *testing.T) {
	s, _ := seed(t, sample()...)

	b, err := s.Get(context.Background(), "2025-03-12", "09:00")
	require.NoError(t, err)
	assert.Equal(t, "Carla", b.Name)

	_, err = s.Get(context.Background(), "2025-03-12", "10:00")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
