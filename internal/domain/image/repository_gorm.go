package image

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// imageRow is the relational shape of an ImageRecord: one row per image with
// the full record serialized as a JSON document column.
type imageRow struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Document   []byte    `gorm:"column:document"`
	UploadedAt time.Time `gorm:"column:uploaded_at"`
}

func (imageRow) TableName() string { return "images" }

// GormRepository backs the metadata store with a relational database
// (SQLite for local setups, PostgreSQL in deployment).
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) (*GormRepository, error) {
	if err := db.AutoMigrate(&imageRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate images table: %w", err)
	}
	return &GormRepository{db: db}, nil
}

func (r *GormRepository) Insert(ctx context.Context, rec *ImageRecord) error {
	row, err := toRow(rec)
	if err != nil {
		return err
	}
	// The id is generated upstream, so a collision is unexpected; the explicit
	// existence check keeps the error uniform across database drivers.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&imageRow{}).Where("id = ?", rec.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}
		if err := tx.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
}

func (r *GormRepository) GetByID(ctx context.Context, id string) (*ImageRecord, error) {
	var row imageRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec ImageRecord
	if err := json.Unmarshal(row.Document, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	return &rec, nil
}

func (r *GormRepository) Update(ctx context.Context, rec *ImageRecord) error {
	row, err := toRow(rec)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&imageRow{}).Error
}

func toRow(rec *ImageRecord) (*imageRow, error) {
	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record %s: %w", rec.ID, err)
	}
	return &imageRow{ID: rec.ID, Document: doc, UploadedAt: rec.UploadedAt}, nil
}
