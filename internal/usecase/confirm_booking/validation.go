package confirm_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name exceeds %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	if len(req.ServiceIDs) == 0 {
		return ErrEmptySelection
	}
	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive, got %d", ErrInvalidInput, id)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateInterval проверяет, что интервал можно бронировать по расписанию бизнеса
func validateInterval(schedule domain.BusinessSchedule, interval domain.Interval, now time.Time) error {
	if interval.Start.Before(now) {
		return fmt.Errorf("%w: start %s, now %s", ErrInPast,
			interval.Start.Format(domain.DisplayDateFormat), now.Format(domain.DisplayDateFormat))
	}

	if !domain.IsServiceDay(schedule, interval.Start) {
		return fmt.Errorf("%w: %s", ErrClosedDay, interval.Start.Weekday())
	}

	window, err := domain.DayWindow(schedule, interval.Start)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	if !window.Contains(interval) {
		return fmt.Errorf("%w: [%s, %s) not within [%s, %s)", ErrOutsideWorkingHours,
			interval.Start.Format(domain.TimeFormat), interval.End.Format(domain.TimeFormat),
			schedule.OpensAt, schedule.ClosesAt)
	}

	return nil
}
