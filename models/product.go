package models

import (
	"time"

	"github.com/google/uuid"
)

// 商品有效期状态
const (
	StatusFresh   = "未過期"
	StatusExpired = "已過期"
	StatusUnknown = "未知"
)

// Product 扫描入库的价签商品模型
type Product struct {
	Base
	Name        string     `gorm:"not null;default:'未知商品'" json:"name"`
	ExpireDate  *time.Time `json:"expire_date"`                            // 有效日期，OCR 可能抓不到
	Price       float64    `gorm:"type:decimal(10,2)" json:"price"`        // 原价（架上标价）
	ProPrice    float64    `gorm:"type:decimal(10,2)" json:"pro_price"`    // 人工折扣价（价签上的特价）
	Market      string     `gorm:"type:varchar(100)" json:"market"`        // 卖场名称
	Status      string     `gorm:"default:'未知'" json:"status"`             // 未過期 / 已過期 / 未知
	ProductType string     `gorm:"type:varchar(50)" json:"product_type"`   // 商品大类
	ImagePath   string     `gorm:"type:text" json:"image_path"`            // 价签照片相对路径
	AiPrice     float64    `gorm:"type:decimal(10,2)" json:"ai_price"`     // 模型预测售价
	Reason      string     `gorm:"type:varchar(20)" json:"reason"`         // 合理 / 不合理

	Histories []History `gorm:"foreignKey:ProductID" json:"-"`
}

// UpdateProductReq 局部更新请求，指针区分"没传"和"清空"
type UpdateProductReq struct {
	Name       *string  `json:"ProName"`
	ExpireDate *string  `json:"ExpireDate"`
	Price      *float64 `json:"Price"`
	ProPrice   *float64 `json:"ProPrice"`
	Market     *string  `json:"Market"`
	ImagePath  *string  `json:"ImagePath"`
}

// ScanResultDTO /ocr 的响应，字段名沿用 Flutter 端约定
type ScanResultDTO struct {
	ProductID   uuid.UUID `json:"ProductID"`
	ProName     string    `json:"ProName"`
	ExpireDate  string    `json:"ExpireDate"`
	Price       float64   `json:"Price"`
	ProPrice    float64   `json:"ProPrice"`
	Market      string    `json:"Market"`
	Status      string    `json:"Status"`
	ProductType string    `json:"ProductType"`
	ImagePath   string    `json:"ImagePath"`
}

// HistoryItemDTO 扫描历史列表项
type HistoryItemDTO struct {
	ProductID   uuid.UUID `json:"ProductID"`
	ProductType string    `json:"ProductType"`
	ProName     string    `json:"ProName"`
	ProPrice    float64   `json:"ProPrice"`
	ScanDate    string    `json:"ScanDate"`
	ExpireDate  string    `json:"ExpireDate"`
	Status      string    `json:"Status"`
	Market      string    `json:"Market"`
	ImagePath   string    `json:"ImagePath"`
	HistoryID   uuid.UUID `json:"HistoryID"` // 用来删除 history 纪录
}
