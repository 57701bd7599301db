package repository

import (
	"context"
	"time"

	"cargoflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoodsRepository interface {
	Create(ctx context.Context, item *model.GoodsReceivedItem) error
	CreateBatch(ctx context.Context, items []model.GoodsReceivedItem) error
	Update(ctx context.Context, item *model.GoodsReceivedItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.GoodsReceivedItem, error)
	ListByContainer(ctx context.Context, containerID uuid.UUID) ([]model.GoodsReceivedItem, error)
	ListByShippingMark(ctx context.Context, mark string, page, limit int) ([]model.GoodsReceivedItem, int64, error)
	ListOverdue(ctx context.Context, receivedBefore time.Time) ([]model.GoodsReceivedItem, error)
}

type goodsRepository struct {
	db *gorm.DB
}

func NewGoodsRepository(db *gorm.DB) GoodsRepository {
	return &goodsRepository{db: db}
}

func (r *goodsRepository) Create(ctx context.Context, item *model.GoodsReceivedItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *goodsRepository) CreateBatch(ctx context.Context, items []model.GoodsReceivedItem) error {
	if len(items) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&items).Error
}

func (r *goodsRepository) Update(ctx context.Context, item *model.GoodsReceivedItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *goodsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.GoodsReceivedItem{}).Error
}

func (r *goodsRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GoodsReceivedItem, error) {
	var item model.GoodsReceivedItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *goodsRepository) ListByContainer(ctx context.Context, containerID uuid.UUID) ([]model.GoodsReceivedItem, error) {
	var items []model.GoodsReceivedItem
	err := GetDB(ctx, r.db).
		Where("container_id = ?", containerID).
		Order("received_at ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *goodsRepository) ListByShippingMark(ctx context.Context, mark string, page, limit int) ([]model.GoodsReceivedItem, int64, error) {
	var items []model.GoodsReceivedItem
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.GoodsReceivedItem{}).Where("shipping_mark = ?", mark).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Where("shipping_mark = ?", mark).
		Order("received_at DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListOverdue returns items still sitting in a warehouse (status RECEIVED)
// that were received before the cutoff, oldest first.
func (r *goodsRepository) ListOverdue(ctx context.Context, receivedBefore time.Time) ([]model.GoodsReceivedItem, error) {
	var items []model.GoodsReceivedItem
	err := GetDB(ctx, r.db).
		Preload("Container").
		Where("status = ? AND received_at < ?", model.ItemReceived, receivedBefore).
		Order("received_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
