package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivehub-backend/internal/models"
)

type fakeCarStore struct {
	cars map[uuid.UUID]*models.Car
	err  error
}

func (f *fakeCarStore) GetCarByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cars[id], nil
}

type fakeBookingStore struct {
	inserted  []models.Booking
	byUser    map[uuid.UUID][]BookingWithCar
	all       []BookingWithRefs
	insertErr error
	findErr   error
}

func (f *fakeBookingStore) InsertBooking(ctx context.Context, b *models.Booking) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *b)
	return nil
}

func (f *fakeBookingStore) FindBookingsByUser(ctx context.Context, userID uuid.UUID) ([]BookingWithCar, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byUser[userID], nil
}

func (f *fakeBookingStore) FindAllBookings(ctx context.Context) ([]BookingWithRefs, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.all, nil
}

func newTestService(car *models.Car) (*Service, *fakeBookingStore) {
	cars := &fakeCarStore{cars: map[uuid.UUID]*models.Car{}}
	if car != nil {
		cars.cars[car.ID] = car
	}
	bookings := &fakeBookingStore{byUser: map[uuid.UUID][]BookingWithCar{}}
	return NewService(cars, bookings), bookings
}

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRentalDays(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"three whole days", "2024-01-01T00:00:00Z", "2024-01-04T00:00:00Z", 3},
		{"fractional day rounds up", "2024-01-01T00:00:00Z", "2024-01-02T01:00:00Z", 2},
		{"single day", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", 1},
		{"under a day bills one day", "2024-01-01T09:00:00Z", "2024-01-01T17:00:00Z", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RentalDays(date(tc.start), date(tc.end)))
		})
	}
}

func TestCreateBookingPricing(t *testing.T) {
	car := &models.Car{ID: uuid.New(), Name: "Civic", PricePerDay: 50}
	svc, store := newTestService(car)
	userID := uuid.New()

	b, err := svc.CreateBooking(context.Background(), userID, CreateBookingInput{
		CarID:     car.ID,
		StartDate: date("2024-01-01T00:00:00Z"),
		EndDate:   date("2024-01-04T00:00:00Z"),
	})
	require.NoError(t, err)

	assert.Equal(t, 150.0, b.TotalPrice)
	assert.Equal(t, userID, b.UserID)
	assert.Equal(t, car.ID, b.CarID)
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	require.Len(t, store.inserted, 1)
	assert.Equal(t, b.ID, store.inserted[0].ID)
}

func TestCreateBookingFractionalDayRoundsUp(t *testing.T) {
	car := &models.Car{ID: uuid.New(), PricePerDay: 80}
	svc, _ := newTestService(car)

	b, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingInput{
		CarID:     car.ID,
		StartDate: date("2024-01-01T00:00:00Z"),
		EndDate:   date("2024-01-02T01:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, 160.0, b.TotalPrice)
}

func TestCreateBookingValidationOrder(t *testing.T) {
	car := &models.Car{ID: uuid.New(), PricePerDay: 50}
	start := date("2024-01-01T00:00:00Z")
	end := date("2024-01-04T00:00:00Z")

	cases := []struct {
		name    string
		in      CreateBookingInput
		wantMsg string
	}{
		{"missing car", CreateBookingInput{StartDate: start, EndDate: end}, "car required"},
		{"missing start", CreateBookingInput{CarID: car.ID, EndDate: end}, "start date required"},
		{"missing end", CreateBookingInput{CarID: car.ID, StartDate: start}, "end date required"},
		{"end equals start", CreateBookingInput{CarID: car.ID, StartDate: start, EndDate: start}, "end date must be after start date"},
		{"end before start", CreateBookingInput{CarID: car.ID, StartDate: end, EndDate: start}, "end date must be after start date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newTestService(car)
			_, err := svc.CreateBooking(context.Background(), uuid.New(), tc.in)
			require.Error(t, err)
			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, KindValidation, kind)
			assert.Equal(t, tc.wantMsg, MessageOf(err))
			assert.Empty(t, store.inserted, "nothing may persist on a validation failure")
		})
	}
}

func TestCreateBookingCarNotFound(t *testing.T) {
	svc, store := newTestService(nil)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingInput{
		CarID:     uuid.New(),
		StartDate: date("2024-01-01T00:00:00Z"),
		EndDate:   date("2024-01-02T00:00:00Z"),
	})
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, kind)
	assert.Equal(t, "car not found", MessageOf(err))
	assert.Empty(t, store.inserted)
}

func TestCreateBookingPersistenceFailure(t *testing.T) {
	car := &models.Car{ID: uuid.New(), PricePerDay: 50}
	svc, store := newTestService(car)
	store.insertErr = errors.New("connection reset")

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingInput{
		CarID:     car.ID,
		StartDate: date("2024-01-01T00:00:00Z"),
		EndDate:   date("2024-01-02T00:00:00Z"),
	})
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindPersistence, kind)
	// Client-safe message hides the store detail; the cause stays wrapped.
	assert.Equal(t, "failed to save booking", MessageOf(err))
	assert.ErrorContains(t, err, "connection reset")
}

func TestListForUserStatusDerivation(t *testing.T) {
	now := date("2024-06-15T12:00:00Z")
	userID := uuid.New()
	mk := func(start, end string) BookingWithCar {
		return BookingWithCar{Booking: models.Booking{
			ID:        uuid.New(),
			UserID:    userID,
			StartDate: date(start),
			EndDate:   date(end),
		}}
	}

	svc, store := newTestService(nil)
	svc.now = func() time.Time { return now }
	store.byUser[userID] = []BookingWithCar{
		mk("2024-07-01T00:00:00Z", "2024-07-05T00:00:00Z"), // upcoming
		mk("2024-06-10T00:00:00Z", "2024-06-20T00:00:00Z"), // active
		mk("2024-05-01T00:00:00Z", "2024-05-04T00:00:00Z"), // completed
	}

	out, err := svc.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, models.BookingStatusUpcoming, out[0].Status)
	assert.Equal(t, models.BookingStatusActive, out[1].Status)
	assert.Equal(t, models.BookingStatusCompleted, out[2].Status)
}

func TestListForUserOnlyOwnBookings(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()
	svc, store := newTestService(nil)
	store.byUser[userA] = []BookingWithCar{{Booking: models.Booking{ID: uuid.New(), UserID: userA}}}
	store.byUser[userB] = []BookingWithCar{{Booking: models.Booking{ID: uuid.New(), UserID: userB}}}

	out, err := svc.ListForUser(context.Background(), userA)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, userA, out[0].Booking.UserID)
}

func TestListForUserIdempotent(t *testing.T) {
	userID := uuid.New()
	svc, store := newTestService(nil)
	svc.now = func() time.Time { return date("2024-06-15T12:00:00Z") }
	store.byUser[userID] = []BookingWithCar{
		{Booking: models.Booking{ID: uuid.New(), UserID: userID, StartDate: date("2024-07-01T00:00:00Z"), EndDate: date("2024-07-02T00:00:00Z")}},
	}

	first, err := svc.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListAllRequiresPrivilege(t *testing.T) {
	svc, store := newTestService(nil)
	store.all = []BookingWithRefs{{Booking: models.Booking{ID: uuid.New()}}}

	_, err := svc.ListAll(context.Background(), Identity{UserID: uuid.New()})
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindAuthorization, kind)

	out, err := svc.ListAll(context.Background(), Identity{UserID: uuid.New(), IsPrivileged: true})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
