package repositories

import (
	"github.com/Julie983186/DynamicPricing/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(p *models.Product) error
	FindByID(id string) (*models.Product, error)
	FindAll() ([]models.Product, error)
	FindUnexpired() ([]models.Product, error)
	UpdateFields(id string, fields map[string]interface{}) error
	// 专门处理估价结果的写回，逐笔调用
	UpdatePrediction(id string, aiPrice float64, reason string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

func (r *productRepository) FindByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

// FindUnexpired 重新估价调度只关心还没过期的商品
func (r *productRepository) FindUnexpired() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("status <> ?", models.StatusExpired).Find(&products).Error
	return products, err
}

func (r *productRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepository) UpdatePrediction(id string, aiPrice float64, reason string) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"ai_price": aiPrice,
		"reason":   reason,
	}).Error
}
