// Package model provides domain models and DTOs for newsletter subscribers.
package model

import (
	"time"

	catalogModel "github.com/festy23/fixthisbug/internal/catalog/model"
)

// Frequency is how often a subscriber wants to hear from us.
type Frequency string

// Frequency values.
const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Preferences are stored inline on the subscriber row.
type Preferences struct {
	Languages             catalogModel.StringList `gorm:"column:languages;type:jsonb;not null" json:"languages"`
	NotificationFrequency Frequency               `gorm:"column:notification_frequency;type:varchar(16);not null" json:"notification_frequency"`
}

// DefaultPreferences returns the preferences of a fresh subscriber.
func DefaultPreferences() Preferences {
	return Preferences{
		Languages:             catalogModel.StringList{},
		NotificationFrequency: FrequencyWeekly,
	}
}

// Subscriber is a newsletter subscription keyed by email. Rows are never
// deleted, only deactivated.
type Subscriber struct {
	Email        string      `gorm:"primaryKey;column:email;type:varchar(320)" json:"email"`
	SubscribedAt time.Time   `gorm:"column:subscribed_at;not null" json:"subscribed_at"`
	IsActive     bool        `gorm:"column:is_active;not null;index" json:"is_active"`
	Preferences  Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;not null" json:"-"`
}

// TableName specifies the table name for GORM.
func (Subscriber) TableName() string {
	return "subscribers"
}
