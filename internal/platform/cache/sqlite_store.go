package cache

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheEntryModel is one cached HTTP payload in the on-disk cache database.
type CacheEntryModel struct {
	Key       string    `gorm:"column:cache_key;primaryKey;size:255"`
	Value     []byte    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (CacheEntryModel) TableName() string {
	return "response_cache"
}

// SQLiteStore is a Store persisted in a local SQLite file through gorm.
// Expired rows are reported as misses and removed by Purge.
type SQLiteStore struct {
	db  *gorm.DB
	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore uses db, which must already contain the response_cache table (see Migrate).
func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Migrate creates or updates the response_cache table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CacheEntryModel{})
}

// Get returns the cached value if it has not expired yet.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var m CacheEntryModel
	err := s.db.WithContext(ctx).
		Where("cache_key = ? AND expires_at > ?", key, s.now().UTC()).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return m.Value, nil
}

// Set inserts or replaces the entry for key.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m := CacheEntryModel{
		Key:       key,
		Value:     value,
		ExpiresAt: s.now().Add(ttl).UTC(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
	}).Create(&m).Error
}

// Delete removes the entry for key, if any.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("cache_key = ?", key).Delete(&CacheEntryModel{}).Error
}

// Purge deletes every expired entry and returns how many rows were removed.
func (s *SQLiteStore) Purge(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now().UTC()).Delete(&CacheEntryModel{})
	return res.RowsAffected, res.Error
}

// Ping checks that the database file is still reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
