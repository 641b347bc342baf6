package model

import "time"

// UntilType says when a task's recurrence naturally ends.
type UntilType string

const (
	UntilStopped   UntilType = "stopped"   // runs until the user deletes it
	UntilDate      UntilType = "date"      // completed once the date passes
	UntilAmount    UntilType = "amount"    // completed after N logged events
	UntilCompleted UntilType = "completed" // runs until manually completed
)

// Until is the termination rule owned by exactly one task. Like
// Frequency, rows are immutable and replaced wholesale on update.
type Until struct {
	ID     uint `gorm:"primaryKey"`
	TaskID uint `gorm:"uniqueIndex"`

	Type   UntilType
	Amount int        // amount type only
	Date   *time.Time // date type only, midnight local
}
