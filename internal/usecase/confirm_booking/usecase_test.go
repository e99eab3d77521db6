package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	businessRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/business"
	catalogRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/catalog"
	catalogService "github.com/m04kA/SMC-SlotBooking/internal/service/catalog"
	catalogModels "github.com/m04kA/SMC-SlotBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SlotBooking/pkg/keylock"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
	"github.com/m04kA/SMC-SlotBooking/pkg/metrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/ptr"
	"github.com/m04kA/SMC-SlotBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// 2025-10-15 - среда
var wednesday = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBusinesses struct {
	business *domain.Business
}

func (f *fakeBusinesses) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	if f.business == nil || f.business.ID != id {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return f.business, nil
}

type fakeCatalog struct {
	services []*domain.ServiceSpec
}

func (f *fakeCatalog) GetByIDs(_ context.Context, businessID int64, ids []int64) ([]*domain.ServiceSpec, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var result []*domain.ServiceSpec
	for _, s := range f.services {
		if s.BusinessID == businessID && wanted[s.ID] {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*domain.ServiceSpec, error) {
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalog) Create(_ context.Context, service *domain.ServiceSpec) (*domain.ServiceSpec, error) {
	created := *service
	created.ID = int64(100 + len(f.services))
	f.services = append(f.services, &created)
	return &created, nil
}

// UpdatePrice меняет цену прямо в общем указателе, который видел use case
func (f *fakeCatalog) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (*domain.ServiceSpec, error) {
	s, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Price = price
	return s, nil
}

func (f *fakeCatalog) Delete(_ context.Context, id int64) error {
	for i, s := range f.services {
		if s.ID == id {
			f.services = append(f.services[:i], f.services[i+1:]...)
			return nil
		}
	}
	return catalogRepo.ErrServiceNotFound
}

// memoryAppointments хранилище без собственной изоляции: атомарность обеспечивает только Locker
type memoryAppointments struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
	findErr      error
}

func (m *memoryAppointments) FindOverlapping(_ context.Context, businessID int64, window domain.Interval) ([]*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.Appointment
	for _, a := range m.appointments {
		if a.BusinessID == businessID && domain.Overlaps(a.Interval(), window) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *memoryAppointments) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	// Окно гонки между проверкой и записью
	time.Sleep(time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	appointment.ID = m.nextID
	appointment.CreatedAt = time.Now()
	m.appointments = append(m.appointments, appointment)
	return appointment, nil
}

func (m *memoryAppointments) all() []*domain.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Appointment(nil), m.appointments...)
}

type directTx struct {
	err error
}

func (d *directTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if d.err != nil {
		return d.err
	}
	return fn(ctx)
}

type fakeMetrics struct {
	mu      sync.Mutex
	results map[string]int
	waits   int
}

func (f *fakeMetrics) RecordBookingResult(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.results == nil {
		f.results = make(map[string]int)
	}
	f.results[result]++
}

func (f *fakeMetrics) ObserveLockWait(string, time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waits++
}

type failingLocker struct{ err error }

func (f failingLocker) Acquire(context.Context, string) (func(), error) { return nil, f.err }
func (f failingLocker) Backend() string                                 { return "failing" }

type fixture struct {
	businesses   *fakeBusinesses
	catalog      *fakeCatalog
	appointments *memoryAppointments
	locker       Locker
	tx           *directTx
	metrics      *fakeMetrics
	now          time.Time
}

func newFixture() *fixture {
	return &fixture{
		businesses: &fakeBusinesses{business: &domain.Business{
			ID:       1,
			Slug:     "barber",
			Name:     "Barbearia do Zé",
			Schedule: domain.BusinessSchedule{OpensAt: "08:00", ClosesAt: "19:00", WorksSaturday: true},
		}},
		catalog: &fakeCatalog{services: []*domain.ServiceSpec{
			{ID: 10, BusinessID: 1, Name: "Corte", DurationMinutes: 30, Price: decimal.RequireFromString("35.00")},
			{ID: 11, BusinessID: 1, Name: "Barba", DurationMinutes: 30, Price: decimal.RequireFromString("20.50")},
			{ID: 12, BusinessID: 1, Name: "Pacote", DurationMinutes: 90, Price: decimal.RequireFromString("80.00")},
		}},
		appointments: &memoryAppointments{},
		locker:       keylock.New(2 * time.Second),
		tx:           &directTx{},
		metrics:      &fakeMetrics{},
		now:          wednesday.AddDate(0, 0, -1).Add(12 * time.Hour),
	}
}

func (f *fixture) useCase() *UseCase {
	return NewUseCase(f.appointments, f.businesses, f.catalog, f.locker, f.tx, f.metrics, logger.NewNop(),
		WithTimeProvider(fixedTime{now: f.now}))
}

func (f *fixture) book(start, end string) {
	s, _ := domain.Combine(wednesday, types.TimeString(start))
	e, _ := domain.Combine(wednesday, types.TimeString(end))
	f.appointments.appointments = append(f.appointments.appointments, &domain.Appointment{ID: 100, BusinessID: 1, StartAt: s, EndAt: e})
}

func request(start string, serviceIDs ...int64) *Request {
	return &Request{
		BusinessID: 1,
		ClientName: "Ana",
		ServiceIDs: serviceIDs,
		Date:       wednesday,
		StartTime:  types.TimeString(start),
	}
}

func TestExecute_Confirms(t *testing.T) {
	f := newFixture()
	req := request("09:00", 11, 10)
	req.Note = ptr.Ptr("primeira vez")

	resp, err := f.useCase().Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Barbearia do Zé", resp.BusinessName)
	assert.Equal(t, "Barba + Corte", resp.ServiceNames)
	assert.True(t, decimal.RequireFromString("55.50").Equal(resp.TotalPrice))
	assert.Equal(t, wednesday.Add(9*time.Hour), resp.StartAt)
	assert.Equal(t, wednesday.Add(10*time.Hour), resp.EndAt)
	assert.Equal(t, "15/10/2025 09:00", resp.DisplayDate)
	assert.Equal(t, "primeira vez", *resp.Note)
	assert.Equal(t, 1, f.metrics.results[metrics.BookingResultConfirmed])
	assert.Equal(t, 1, f.metrics.waits)
}

func TestExecute_CatalogChangesDoNotAffectConfirmedBooking(t *testing.T) {
	f := newFixture()
	catalogSvc := catalogService.NewService(f.catalog, logger.NewNop())

	confirmed, err := f.useCase().Execute(context.Background(), request("09:00", 10, 11))
	require.NoError(t, err)

	// Владелец поднимает цену и меняет длительность после подтверждения
	newPrice := decimal.RequireFromString("50.00")
	_, err = catalogSvc.UpdatePrice(context.Background(), &catalogModels.UpdatePriceRequest{
		OwnerBusinessID: 1,
		ServiceID:       10,
		Price:           &newPrice,
	})
	require.NoError(t, err)
	f.catalog.services[0].DurationMinutes = 60

	stored := f.appointments.all()
	require.Len(t, stored, 1)
	assert.Equal(t, confirmed.ID, stored[0].ID)
	assert.Equal(t, "55.50", stored[0].TotalPrice.StringFixed(2))
	assert.Equal(t, wednesday.Add(10*time.Hour), stored[0].EndAt)
	assert.Equal(t, "Corte + Barba", stored[0].ServiceNames)

	// Новое бронирование считается по обновленному каталогу
	next, err := f.useCase().Execute(context.Background(), request("14:00", 10, 11))
	require.NoError(t, err)
	assert.Equal(t, "70.50", next.TotalPrice.StringFixed(2))
	assert.Equal(t, wednesday.Add(15*time.Hour+30*time.Minute), next.EndAt)
	assert.Equal(t, "55.50", f.appointments.all()[0].TotalPrice.StringFixed(2))
}

func TestExecute_DeletedServiceIsUnknown(t *testing.T) {
	f := newFixture()
	catalogSvc := catalogService.NewService(f.catalog, logger.NewNop())

	_, err := f.useCase().Execute(context.Background(), request("09:00", 12))
	require.NoError(t, err)

	require.NoError(t, catalogSvc.DeleteService(context.Background(), 12, 1))

	_, err = f.useCase().Execute(context.Background(), request("15:00", 12))
	assert.ErrorIs(t, err, ErrUnknownService)
	require.Len(t, f.appointments.all(), 1)
	assert.Equal(t, "Pacote", f.appointments.all()[0].ServiceNames)
}

func TestExecute_OverlapIsConflict(t *testing.T) {
	f := newFixture()
	f.book("09:00", "10:00")

	_, err := f.useCase().Execute(context.Background(), request("09:30", 10))

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, f.appointments.all(), 1)
	assert.Equal(t, 1, f.metrics.results[metrics.BookingResultConflict])
}

func TestExecute_AdjacentIntervalsAreAllowed(t *testing.T) {
	f := newFixture()
	f.book("09:00", "10:00")

	_, err := f.useCase().Execute(context.Background(), request("10:00", 10))
	require.NoError(t, err)

	_, err = f.useCase().Execute(context.Background(), request("08:30", 10))
	require.NoError(t, err)

	assert.Len(t, f.appointments.all(), 3)
}

func TestExecute_RejectsBySchedule(t *testing.T) {
	tests := []struct {
		name  string
		start string
		date  time.Time
		ids   []int64
		want  error
	}{
		{"ends after closing", "18:00", wednesday, []int64{12}, ErrOutsideWorkingHours},
		{"starts before opening", "07:30", wednesday, []int64{10}, ErrOutsideWorkingHours},
		{"closed sunday", "09:00", wednesday.AddDate(0, 0, 4), []int64{10}, ErrClosedDay},
		{"in the past", "09:00", wednesday.AddDate(0, 0, -2), []int64{10}, ErrInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := request(tt.start, tt.ids...)
			req.Date = tt.date

			_, err := f.useCase().Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, f.appointments.all())
		})
	}
}

func TestExecute_LastSlotOfTheDayFits(t *testing.T) {
	f := newFixture()

	_, err := f.useCase().Execute(context.Background(), request("17:30", 12))

	require.NoError(t, err)
}

func TestExecute_InvalidSchedule(t *testing.T) {
	f := newFixture()
	f.businesses.business.Schedule = domain.BusinessSchedule{OpensAt: "19:00", ClosesAt: "08:00"}

	_, err := f.useCase().Execute(context.Background(), request("09:00", 10))

	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
}

func TestExecute_InputErrors(t *testing.T) {
	f := newFixture()

	_, err := f.useCase().Execute(context.Background(), request("09:00"))
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = f.useCase().Execute(context.Background(), request("09:00", 10, 99))
	assert.ErrorIs(t, err, ErrUnknownService)

	req := request("09:00", 10)
	req.BusinessID = 42
	_, err = f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	req = request("9h", 10)
	_, err = f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request("09:00", 10)
	req.ClientName = "   "
	_, err = f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, f.appointments.all())
}

func TestExecute_LockTimeoutIsConflict(t *testing.T) {
	f := newFixture()
	f.locker = failingLocker{err: fmt.Errorf("%w: key=business:1", keylock.ErrLockTimeout)}

	_, err := f.useCase().Execute(context.Background(), request("09:00", 10))

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, 1, f.metrics.results[metrics.BookingResultLockTimeout])
}

func TestExecute_SerializationFailureIsConflict(t *testing.T) {
	f := newFixture()
	f.tx.err = fmt.Errorf("%w: after 3 retries", txmanager.ErrSerializationFailure)

	_, err := f.useCase().Execute(context.Background(), request("09:00", 10))

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.appointments.findErr = errors.New("connection reset")

	_, err := f.useCase().Execute(context.Background(), request("09:00", 10))

	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, f.metrics.results[metrics.BookingResultError])
}

func TestExecute_ConcurrentSameSlotConfirmsExactlyOnce(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	const callers = 20
	var confirmed, conflicts int
	var mu sync.Mutex

	var g errgroup.Group
	for i := 0; i < callers; i++ {
		i := i
		g.Go(func() error {
			req := request("09:00", 10)
			req.ClientName = fmt.Sprintf("client-%d", i)

			_, err := uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				confirmed++
			case errors.Is(err, ErrSlotUnavailable):
				conflicts++
			default:
				return err
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, 1, confirmed)
	assert.Equal(t, callers-1, conflicts)
	assert.Len(t, f.appointments.all(), 1)
}

func TestExecute_ConcurrentMixedRequestsNeverOverlap(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	starts := []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}

	var g errgroup.Group
	for i := 0; i < 40; i++ {
		start := starts[i%len(starts)]
		serviceID := []int64{10, 11, 12}[i%3]
		g.Go(func() error {
			_, err := uc.Execute(context.Background(), request(start, serviceID))
			if err != nil && !errors.Is(err, ErrSlotUnavailable) {
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	stored := f.appointments.all()
	require.NotEmpty(t, stored)
	for i := range stored {
		for j := i + 1; j < len(stored); j++ {
			assert.False(t, domain.Overlaps(stored[i].Interval(), stored[j].Interval()),
				"appointments %d and %d overlap", stored[i].ID, stored[j].ID)
		}
	}
}
