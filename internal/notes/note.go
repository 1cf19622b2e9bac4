// Package notes is the scaffold's sample resource. It exists to prove the
// store, cache, and auth wiring end to end; it carries no health semantics.
package notes

import "time"

// Note is the sample persisted resource.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
