package repositories

import (
	"github.com/Julie983186/DynamicPricing/models"

	"gorm.io/gorm"
)

type HistoryRepository interface {
	Create(h *models.History) error
	FindByID(id string) (*models.History, error)
	Delete(id string) error
	// FindByUserID 支持商品名称模糊搜索和按扫描日期筛选
	FindByUserID(userID, search, date string) ([]models.History, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(h *models.History) error {
	return r.db.Create(h).Error
}

func (r *historyRepository) FindByID(id string) (*models.History, error) {
	var history models.History
	if err := r.db.First(&history, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &history, nil
}

func (r *historyRepository) Delete(id string) error {
	return r.db.Delete(&models.History{}, "id = ?", id).Error
}

func (r *historyRepository) FindByUserID(userID, search, date string) ([]models.History, error) {
	query := r.db.Preload("Product").
		Joins("JOIN products ON products.id = histories.product_id").
		Where("histories.user_id = ?", userID)

	if search != "" {
		query = query.Where("products.name LIKE ?", "%"+search+"%")
	}
	if date != "" {
		query = query.Where("DATE(histories.created_at) = ?", date)
	}

	var histories []models.History
	err := query.Order("histories.created_at DESC").Find(&histories).Error
	return histories, err
}
