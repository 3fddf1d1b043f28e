package handlers

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/Julie983186/DynamicPricing/logic"
	"github.com/Julie983186/DynamicPricing/metrics"
	"github.com/Julie983186/DynamicPricing/models"
	"github.com/Julie983186/DynamicPricing/pricing"
	"github.com/Julie983186/DynamicPricing/repositories"
	"github.com/Julie983186/DynamicPricing/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScanHandler struct {
	ProductRepo repositories.ProductRepository
	HistoryRepo repositories.HistoryRepository
	OCR         services.OCRService
	Scheduler   *services.RepricingScheduler
	UploadDir   string
	Loc         *time.Location
}

func NewScanHandler(productRepo repositories.ProductRepository, historyRepo repositories.HistoryRepository,
	ocr services.OCRService, scheduler *services.RepricingScheduler, uploadDir string, loc *time.Location) *ScanHandler {
	return &ScanHandler{
		ProductRepo: productRepo,
		HistoryRepo: historyRepo,
		OCR:         ocr,
		Scheduler:   scheduler,
		UploadDir:   uploadDir,
		Loc:         loc,
	}
}

// scanImageFilename 时间戳加随机后缀，同一秒连扫两张也不会互相覆盖
func scanImageFilename(now time.Time) string {
	return fmt.Sprintf("%s_%s.jpg", now.Format("20060102150405"), uuid.NewString()[:8])
}

// Scan 价签扫描入库：存图 → OCR → 字段抽取 → 分类 → 建档 → 记历史
func (h *ScanHandler) Scan(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(400, gin.H{"error": "缺少 image 文件"})
		return
	}
	market := c.DefaultPostForm("market", "未知賣場")

	// 强制存到服务器 uploads/，数据库里记相对路径
	filename := scanImageFilename(time.Now().In(h.Loc))
	fullPath := filepath.Join(h.UploadDir, filename)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(500, gin.H{"error": "保存图片失败: " + err.Error()})
		return
	}
	dbPath := "/uploads/" + filename

	lines, err := h.OCR.Recognize(c.Request.Context(), fullPath)
	if err != nil {
		c.JSON(500, gin.H{"error": "OCR 辨识失败: " + err.Error()})
		return
	}
	log.Printf("🔍 OCR 辨识结果: %v", lines)

	info := logic.ExtractTagInfo(lines)
	name := info.Name
	if name == "" {
		name = "未知商品"
	}
	productType := pricing.ResolveCategory(name)

	// 有效期状态：解析得出来才分得出过没过期
	now := time.Now().In(h.Loc)
	status := models.StatusUnknown
	var expireAt *time.Time
	if expiry, ok := pricing.ParseExpiry(info.ExpireDate, h.Loc); ok {
		expireAt = &expiry
		if expiry.After(now) {
			status = models.StatusFresh
		} else {
			status = models.StatusExpired
		}
	}

	product := models.Product{
		Name:        name,
		ExpireDate:  expireAt,
		Price:       info.Price,
		ProPrice:    info.ProPrice,
		Market:      market,
		Status:      status,
		ProductType: productType,
		ImagePath:   dbPath,
	}
	if err := h.ProductRepo.Create(&product); err != nil {
		c.JSON(500, gin.H{"error": "商品入库失败: " + err.Error()})
		return
	}
	metrics.ScansTotal.Inc()

	// 登录用户才记扫描历史，访客只回结果
	if v, ok := c.Get("current_user_id"); ok {
		userID := v.(uuid.UUID)
		history := models.History{UserID: userID, ProductID: product.ID}
		if err := h.HistoryRepo.Create(&history); err != nil {
			log.Printf("❌ 新增 history 纪录失败: %v", err)
		}
	}

	// 唤醒估价引擎，让新商品尽快拿到预测价
	h.Scheduler.Trigger()

	expireDate := ""
	if expireAt != nil {
		expireDate = expireAt.Format("2006-01-02")
	}
	c.JSON(200, models.ScanResultDTO{
		ProductID:   product.ID,
		ProName:     name,
		ExpireDate:  expireDate,
		Price:       info.Price,
		ProPrice:    info.ProPrice,
		Market:      market,
		Status:      status,
		ProductType: productType,
		ImagePath:   dbPath,
	})
}
