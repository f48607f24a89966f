package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"raffle/internal/events"

	"github.com/google/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Record is one journalled notification. The journal is append-only:
// rows are never updated or deleted.
type Record struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Kind      string    `gorm:"index;not null"`
	Payload   string    `gorm:"type:json;not null"`
	EmittedAt time.Time `gorm:"autoCreateTime"`
}

// Journal persists every campaign notification to a sqlite database. It
// implements events.Sink; persistence failures are logged and never
// surfaced into the operation that emitted the notification.
type Journal struct {
	db *gorm.DB
}

// Open creates or opens the journal database at the given path and
// migrates its schema.
func Open(path string) (*Journal, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Publish appends the notification to the journal.
func (j *Journal) Publish(n events.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		logger.Errorf("journal: encode %s notification: %v", n.Kind(), err)
		return
	}
	record := Record{Kind: n.Kind(), Payload: string(payload)}
	if err := j.db.Create(&record).Error; err != nil {
		logger.Errorf("journal: append %s notification: %v", n.Kind(), err)
	}
}

// Records returns every journalled notification in emission order.
func (j *Journal) Records() ([]Record, error) {
	var records []Record
	if err := j.db.Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// RecordsByKind returns the journalled notifications of one kind, in
// emission order.
func (j *Journal) RecordsByKind(kind string) ([]Record, error) {
	var records []Record
	if err := j.db.Where("kind = ?", kind).Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
