package handlers

import (
	"fmt"
	"strings"

	"github.com/Julie983186/DynamicPricing/models"
	"github.com/Julie983186/DynamicPricing/repositories"
	"github.com/Julie983186/DynamicPricing/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HistoryHandler struct {
	Repo   repositories.HistoryRepository
	Export *services.ExportService
}

func NewHistoryHandler(repo repositories.HistoryRepository, export *services.ExportService) *HistoryHandler {
	return &HistoryHandler{Repo: repo, Export: export}
}

// GetProducts 抓某个用户的扫描历史，支持名称模糊搜索和日期筛选
func (h *HistoryHandler) GetProducts(c *gin.Context) {
	userID := c.Param("user_id")

	// 支援访客模式
	if userID == "0" || strings.EqualFold(userID, "guest") {
		c.JSON(200, gin.H{"products": []models.HistoryItemDTO{}})
		return
	}

	histories, err := h.Repo.FindByUserID(userID, c.Query("search"), c.Query("date"))
	if err != nil {
		c.JSON(500, gin.H{"error": "查询失败: " + err.Error()})
		return
	}

	products := make([]models.HistoryItemDTO, 0, len(histories))
	for _, item := range histories {
		p := item.Product
		expireDate := ""
		if p.ExpireDate != nil {
			expireDate = p.ExpireDate.Format("2006-01-02")
		}
		products = append(products, models.HistoryItemDTO{
			ProductID:   p.ID,
			ProductType: p.ProductType,
			ProName:     p.Name,
			ProPrice:    p.ProPrice,
			ScanDate:    item.CreatedAt.Format("2006-01-02"),
			ExpireDate:  expireDate,
			Status:      p.Status,
			Market:      p.Market,
			ImagePath:   p.ImagePath,
			HistoryID:   item.ID,
		})
	}

	c.JSON(200, gin.H{"products": products})
}

// DeleteHistory 删除一笔扫描纪录，只能删自己的
func (h *HistoryHandler) DeleteHistory(c *gin.Context) {
	id := c.Param("id")

	history, err := h.Repo.FindByID(id)
	if err != nil {
		c.JSON(404, gin.H{"error": fmt.Sprintf("History ID %s 不存在", id)})
		return
	}

	currentID, ok := c.Get("current_user_id")
	if !ok || currentID.(uuid.UUID) != history.UserID {
		c.JSON(403, gin.H{"message": "沒有權限刪除此紀錄"})
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		c.JSON(500, gin.H{"error": "刪除失敗: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": fmt.Sprintf("刪除成功 (ID=%s)", id)})
}

// ExportHistory 把扫描历史导出成 XLSX 下载
func (h *HistoryHandler) ExportHistory(c *gin.Context) {
	userID := c.Param("user_id")

	data, err := h.Export.ExportHistoryXLSX(userID, c.Query("search"), c.Query("date"))
	if err != nil {
		c.JSON(500, gin.H{"error": "汇出失败: " + err.Error()})
		return
	}

	filename := fmt.Sprintf("scan_history_%s.xlsx", userID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
