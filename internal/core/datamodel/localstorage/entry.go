package localstorage

import "time"

// Entry is one persisted key of the client's local storage.
type Entry struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (Entry) TableName() string {
	return "local_storage"
}
