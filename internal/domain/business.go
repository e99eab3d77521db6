package domain

import "time"

// Business бизнес, чей календарь принимает бронирования (единственный ресурс)
type Business struct {
	ID        int64
	Slug      string
	Name      string
	Schedule  BusinessSchedule
	CreatedAt time.Time
	UpdatedAt time.Time
}
