package model

import "time"

// EventAround is the user's rough placement of a logged occurrence.
type EventAround string

const (
	AroundToday        EventAround = "today"
	AroundYesterday    EventAround = "yesterday"
	AroundSpecifically EventAround = "specifically"
)

// TaskEvent records one occurrence of a task being done. At is set iff
// the event was placed "specifically"; EffectiveAt is derived from
// Around at creation time and is the only timestamp the engine orders
// and anchors on.
type TaskEvent struct {
	ID     uint `gorm:"primaryKey"`
	TaskID uint `gorm:"index"`

	Around      EventAround
	At          *time.Time
	EffectiveAt time.Time `gorm:"index"`

	CreatedAt time.Time
}
