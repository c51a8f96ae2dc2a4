// Package archive persists records of taken screen captures in a local
// sqlite database. It stores metadata and file locations only; pixel data
// lives in the files the CLI writes, never in the database.
package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/screengrab/screengrab/platform"
	"github.com/screengrab/screengrab/screenshot"
)

// Capture is one archived screen capture record
type Capture struct {
	ID         string `gorm:"primaryKey" yaml:"id"`
	Display    int    `yaml:"display"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	RowLen     int    `yaml:"row_len"`
	PixelWidth int    `yaml:"pixel_width"`
	Bytes      int64  `yaml:"bytes"`
	SHA256     string `gorm:"index" yaml:"sha256"`
	Path       string `yaml:"path"`
	Host       string `yaml:"host"`
	OS         string `yaml:"os"`
	TakenAt    int64  `gorm:"autoCreateTime" yaml:"taken_at"`
}

// BeforeCreate hook to generate UUID
func (c *Capture) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.TakenAt == 0 {
		c.TakenAt = time.Now().Unix()
	}
	return nil
}

// Store manages the capture archive
type Store struct {
	db     *gorm.DB
	logger interface {
		Info(string, ...interface{})
		Debug(string, ...interface{})
		Error(string, ...interface{})
	}
}

// Open opens (creating if necessary) the archive database at path
func Open(path string, logger interface {
	Info(string, ...interface{})
	Debug(string, ...interface{})
	Error(string, ...interface{})
}) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	if err := db.AutoMigrate(&Capture{}); err != nil {
		return nil, fmt.Errorf("failed to migrate archive schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Record builds a Capture from a screenshot and saves it. The checksum is
// taken over the raw bitmap, so identical frames dedupe by SHA256 even when
// written to different files.
func (s *Store) Record(img *screenshot.Screenshot, display int, path string) (*Capture, error) {
	sum := sha256.Sum256(img.Data())

	c := &Capture{
		Display:    display,
		Width:      img.Width(),
		Height:     img.Height(),
		RowLen:     img.RowLen(),
		PixelWidth: img.PixelWidth(),
		Bytes:      int64(img.RawLen()),
		SHA256:     hex.EncodeToString(sum[:]),
		Path:       path,
		Host:       platform.Hostname(),
		OS:         platform.OS(),
	}
	if err := s.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Save persists a capture record
func (s *Store) Save(c *Capture) error {
	if err := s.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to save capture record: %w", err)
	}
	s.logger.Debug("archived capture %s (%dx%d)", c.ID, c.Width, c.Height)
	return nil
}

// List returns all capture records, newest first
func (s *Store) List() ([]Capture, error) {
	var captures []Capture
	if err := s.db.Order("taken_at desc").Find(&captures).Error; err != nil {
		return nil, fmt.Errorf("failed to list captures: %w", err)
	}
	return captures, nil
}

// Get retrieves a capture record by ID
func (s *Store) Get(id string) (*Capture, error) {
	var c Capture
	if err := s.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("capture %s not found: %w", id, err)
	}
	return &c, nil
}

// Delete removes a capture record by ID
func (s *Store) Delete(id string) error {
	res := s.db.Delete(&Capture{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete capture %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("capture %s not found", id)
	}
	s.logger.Info("deleted capture %s", id)
	return nil
}
