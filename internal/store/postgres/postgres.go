package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dom/unique-nails/internal/store"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	kindList = "list"
	kindSet  = "set"
)

// entry holds a string value.
type entry struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (entry) TableName() string { return "kv_entries" }

// member is one element of a list or set. List order is insertion order,
// which the auto-increment id preserves.
type member struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	Key    string `gorm:"index:idx_kv_members_key_kind;not null"`
	Kind   string `gorm:"index:idx_kv_members_key_kind;size:8;not null"`
	Member string `gorm:"type:text;not null"`
}

func (member) TableName() string { return "kv_members" }

// Store maps the key-value contract onto two relational tables so the
// application can run against a plain PostgreSQL database.
type Store struct {
	db *gorm.DB
}

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// New migrates the kv tables and returns a Store over db.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&entry{}, &member{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var e entry
	err := s.db.WithContext(ctx).First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("key = ?", key).Delete(&member{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entry{Key: key, Value: value, UpdatedAt: time.Now()}).Error
	})
}

func (s *Store) SetNX(ctx context.Context, key, value string) (bool, error) {
	written := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&member{}).Where("key = ?", key).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entry{Key: key, Value: value, UpdatedAt: time.Now()})
		if res.Error != nil {
			return res.Error
		}
		written = res.RowsAffected == 1
		return nil
	})
	return written, err
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("key IN ?", keys).Delete(&entry{}).Error; err != nil {
			return err
		}
		return tx.Where("key IN ?", keys).Delete(&member{}).Error
	})
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&entry{}).Where("key = ?", key).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if err := s.db.WithContext(ctx).Model(&member{}).Where("key = ?", key).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeLike(prefix) + "%"

	var keys []string
	if err := s.db.WithContext(ctx).Model(&entry{}).
		Where("key LIKE ?", pattern).
		Pluck("key", &keys).Error; err != nil {
		return nil, err
	}

	var collections []string
	if err := s.db.WithContext(ctx).Model(&member{}).
		Distinct("key").
		Where("key LIKE ?", pattern).
		Pluck("key", &collections).Error; err != nil {
		return nil, err
	}

	return append(keys, collections...), nil
}

func (s *Store) SAdd(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&member{}).
			Where("key = ? AND kind = ? AND member = ?", key, kindSet, value).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		return tx.Create(&member{Key: key, Kind: kindSet, Member: value}).Error
	})
}

func (s *Store) SRem(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).
		Where("key = ? AND kind = ? AND member = ?", key, kindSet, value).
		Delete(&member{}).Error
}

func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	var members []string
	err := s.db.WithContext(ctx).Model(&member{}).
		Where("key = ? AND kind = ?", key, kindSet).
		Pluck("member", &members).Error
	return members, err
}

func (s *Store) RPush(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Create(&member{Key: key, Kind: kindList, Member: value}).Error
}

func (s *Store) LRem(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).
		Where("key = ? AND kind = ? AND member = ?", key, kindList, value).
		Delete(&member{}).Error
}

func (s *Store) LRange(ctx context.Context, key string) ([]string, error) {
	var values []string
	err := s.db.WithContext(ctx).Model(&member{}).
		Where("key = ? AND kind = ?", key, kindList).
		Order("id").
		Pluck("member", &values).Error
	return values, err
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// escapeLike escapes LIKE wildcards so the prefix is matched literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
