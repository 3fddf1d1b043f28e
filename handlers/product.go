package handlers

import (
	"time"

	"github.com/Julie983186/DynamicPricing/models"
	"github.com/Julie983186/DynamicPricing/pricing"
	"github.com/Julie983186/DynamicPricing/repositories"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Repo repositories.ProductRepository
	Loc  *time.Location
}

func NewProductHandler(repo repositories.ProductRepository, loc *time.Location) *ProductHandler {
	return &ProductHandler{Repo: repo, Loc: loc}
}

// UpdateProduct 局部更新商品。
// 改了有效期要重算状态，改了名称要重算大类。
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Repo.FindByID(id); err != nil {
		c.JSON(404, gin.H{"error": "找不到該商品"})
		return
	}

	var req models.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "参数错误"})
		return
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
		fields["product_type"] = pricing.ResolveCategory(*req.Name)
	}
	if req.ExpireDate != nil {
		now := time.Now().In(h.Loc)
		if expiry, ok := pricing.ParseExpiry(*req.ExpireDate, h.Loc); ok {
			fields["expire_date"] = expiry
			if expiry.After(now) {
				fields["status"] = models.StatusFresh
			} else {
				fields["status"] = models.StatusExpired
			}
		} else {
			fields["expire_date"] = nil
			fields["status"] = models.StatusUnknown
		}
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.ProPrice != nil {
		fields["pro_price"] = *req.ProPrice
	}
	if req.Market != nil {
		fields["market"] = *req.Market
	}
	if req.ImagePath != nil {
		fields["image_path"] = *req.ImagePath
	}

	if len(fields) == 0 {
		c.JSON(400, gin.H{"error": "沒有可更新的欄位"})
		return
	}

	if err := h.Repo.UpdateFields(id, fields); err != nil {
		c.JSON(500, gin.H{"error": "更新失敗: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "更新成功", "fields": fields})
}
