package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"treasury_go/internal/domain"
)

// MemoryDSN keeps the database in process memory. Nothing survives a restart.
const MemoryDSN = "file::memory:?cache=shared"

// Storage indexes reference data and the latest history line per entity
// so the running pipeline can be queried. It is not a persistence layer.
type Storage struct {
	db *gorm.DB

	mu  sync.Mutex
	seq map[string]uint64 // Per-kind line counters
}

// NewStorage opens the SQLite (pure Go) database at dsn and migrates the schema.
func NewStorage(dsn string) (*Storage, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.ProductInfo{}, &domain.HistoryRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db, seq: make(map[string]uint64)}, nil
}

// Close releases the underlying connection pool.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ======================================================================================
// Product Operations
// ======================================================================================

// UpsertProduct creates or updates product reference data
func (s *Storage) UpsertProduct(info *domain.ProductInfo) error {
	return s.db.Save(info).Error
}

// GetProduct retrieves a product by id
func (s *Storage) GetProduct(id string) (*domain.ProductInfo, error) {
	var info domain.ProductInfo
	err := s.db.First(&info, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// GetAllProducts retrieves all products ordered by id
func (s *Storage) GetAllProducts() ([]domain.ProductInfo, error) {
	var infos []domain.ProductInfo
	err := s.db.Order("id").Find(&infos).Error
	return infos, err
}

// SetProductActive toggles whether a product is part of the live universe
func (s *Storage) SetProductActive(id string, active bool) error {
	res := s.db.Model(&domain.ProductInfo{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrUnknownProduct)
	}
	return nil
}

// ======================================================================================
// History Operations
// ======================================================================================

// SaveHistory stores rec as the latest line for its kind and key, stamping the per-kind sequence.
func (s *Storage) SaveHistory(rec *domain.HistoryRecord) error {
	s.mu.Lock()
	s.seq[rec.Kind]++
	rec.Sequence = s.seq[rec.Kind]
	s.mu.Unlock()

	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error
}

// LatestHistory returns the latest line for kind and key
func (s *Storage) LatestHistory(kind, key string) (*domain.HistoryRecord, error) {
	var rec domain.HistoryRecord
	err := s.db.First(&rec, "kind = ? AND entity_key = ?", kind, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// HistoryByKind returns the latest line of every key of a kind, ordered by key
func (s *Storage) HistoryByKind(kind string) ([]domain.HistoryRecord, error) {
	var recs []domain.HistoryRecord
	err := s.db.Where("kind = ?", kind).Order("entity_key").Find(&recs).Error
	return recs, err
}

// CountHistory returns how many lines of a kind were indexed so far
func (s *Storage) CountHistory(kind string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.seq[kind]
}
