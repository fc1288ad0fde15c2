package logaudit

import (
	"gorm.io/gorm"
)

type Repository interface {
	CreateEntry(entry Entry) error
	GetEntries(limit, offset int) ([]Entry, error)
	GetEntriesByService(service string, limit, offset int) ([]Entry, error)
	GetEntriesByLevel(level string, limit, offset int) ([]Entry, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateEntry(entry Entry) error {
	return r.db.Create(&entry).Error
}

func (r *gormRepository) GetEntries(limit, offset int) ([]Entry, error) {
	var entries []Entry
	err := r.db.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, err
}

func (r *gormRepository) GetEntriesByService(service string, limit, offset int) ([]Entry, error) {
	var entries []Entry
	err := r.db.Where("service = ?", service).
		Order("timestamp DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, err
}

func (r *gormRepository) GetEntriesByLevel(level string, limit, offset int) ([]Entry, error) {
	var entries []Entry
	err := r.db.Where("level = ?", level).
		Order("timestamp DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, err
}
