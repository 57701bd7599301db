package repository

import (
	"context"

	"cargoflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContainerListFilter narrows container listings; empty fields match all.
type ContainerListFilter struct {
	CargoLeg          string
	WarehouseLocation string
	Status            string
	Search            string // matches container number
	Page              int
	Limit             int
}

type ContainerRepository interface {
	Create(ctx context.Context, container *model.CargoContainer) error
	Update(ctx context.Context, container *model.CargoContainer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CargoContainer, error)
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.CargoContainer, error)
	List(ctx context.Context, filter ContainerListFilter) ([]model.CargoContainer, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type containerRepository struct {
	db *gorm.DB
}

func NewContainerRepository(db *gorm.DB) ContainerRepository {
	return &containerRepository{db: db}
}

func (r *containerRepository) Create(ctx context.Context, container *model.CargoContainer) error {
	return GetDB(ctx, r.db).Create(container).Error
}

func (r *containerRepository) Update(ctx context.Context, container *model.CargoContainer) error {
	return GetDB(ctx, r.db).Save(container).Error
}

func (r *containerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.CargoContainer{}).Error
}

func (r *containerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CargoContainer, error) {
	var container model.CargoContainer
	if err := GetDB(ctx, r.db).First(&container, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &container, nil
}

func (r *containerRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.CargoContainer, error) {
	var container model.CargoContainer
	err := GetDB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("goods_received_items.received_at ASC, goods_received_items.created_at ASC")
		}).
		First(&container, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &container, nil
}

func applyContainerFilter(query *gorm.DB, filter ContainerListFilter) *gorm.DB {
	if filter.CargoLeg != "" {
		query = query.Where("cargo_leg = ?", filter.CargoLeg)
	}
	if filter.WarehouseLocation != "" {
		query = query.Where("warehouse_location = ?", filter.WarehouseLocation)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("container_number ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

func (r *containerRepository) List(ctx context.Context, filter ContainerListFilter) ([]model.CargoContainer, int64, error) {
	var containers []model.CargoContainer
	var total int64

	db := GetDB(ctx, r.db)
	if err := applyContainerFilter(db.Model(&model.CargoContainer{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	fetchQuery := applyContainerFilter(db.Model(&model.CargoContainer{}), filter)
	if err := fetchQuery.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&containers).Error; err != nil {
		return nil, 0, err
	}

	return containers, total, nil
}

func (r *containerRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := GetDB(ctx, r.db).Model(&model.CargoContainer{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
