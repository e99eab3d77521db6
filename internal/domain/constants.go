package domain

import "time"

// Default configuration values
const (
	DefaultSlotStep        = 30 * time.Minute
	DefaultServiceDuration = 30 // minutes
)

// Business validation constants
const (
	MaxClientNameLength   = 100
	MaxServiceNameLength  = 50
	MaxServiceNamesLength = 255
	MaxNoteLength         = 255
	MaxServicesPerBooking = 20
)

// ServiceNamesSeparator разделитель названий услуг в записи о бронировании
const ServiceNamesSeparator = " + "

// Time format constants
const (
	TimeFormat        = "15:04"            // HH:MM
	DateFormat        = "2006-01-02"       // YYYY-MM-DD
	DisplayDateFormat = "02/01/2006 15:04" // формат даты в подтверждении
)
