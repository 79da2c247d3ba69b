package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the users bounded context.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&userRecord{})
}

// User schema mirrors the users Postgres adapter. The unique index on email
// is the storage-level backstop for the service's write-time uniqueness check.
type userRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	FirstName   string    `gorm:"column:first_name"`
	Surname     string    `gorm:"column:surname"`
	BirthDate   time.Time `gorm:"column:birth_date;type:date;index"`
	Address     string    `gorm:"column:address"`
	PhoneNumber string    `gorm:"column:phone_number"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }
