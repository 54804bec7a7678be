package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
)

type sessionSlot struct {
	Slot      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (sessionSlot) TableName() string {
	return "session_slots"
}

// SQLiteRepo persists the slots in a single table through gorm.
type SQLiteRepo struct {
	db    *gorm.DB
	owned bool
}

func NewSQLite(db *gorm.DB) (*SQLiteRepo, error) {
	if db == nil {
		return nil, errors.New("[NewSQLite] database handle is required")
	}
	if err := db.AutoMigrate(&sessionSlot{}); err != nil {
		return nil, errors.Wrap(err, "[NewSQLite] migrate")
	}
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Get(ctx context.Context, key string) (string, error) {
	var row sessionSlot
	err := r.db.WithContext(ctx).Where("slot = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", perrors.Wrapf(perrors.ErrStorageKeyNotFound, "%s", key)
	}
	if err != nil {
		return "", errors.Wrapf(err, "[SQLiteRepo.Get] %s", key)
	}
	return row.Value, nil
}

func (r *SQLiteRepo) Set(ctx context.Context, key, value string) error {
	err := r.db.WithContext(ctx).Save(&sessionSlot{Slot: key, Value: value}).Error
	return errors.Wrapf(err, "[SQLiteRepo.Set] %s", key)
}

func (r *SQLiteRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Where("slot IN ?", keys).Delete(&sessionSlot{}).Error
	return errors.Wrap(err, "[SQLiteRepo.Delete]")
}

// Close releases the pool only when the repo opened it itself; a shared
// handle passed through Dependencies is left to its owner.
func (r *SQLiteRepo) Close() error {
	if !r.owned {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.Wrap(err, "[SQLiteRepo.Close]")
	}
	return sqlDB.Close()
}
