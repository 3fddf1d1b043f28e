package models

import (
	"github.com/google/uuid"
)

// History 用户扫描纪录
type History struct {
	Base
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`

	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}

// WSMessage 推送给 App 的包装结构
type WSMessage struct {
	Type string      `json:"type"` // 例如 "PRICE_UPDATE"
	Data interface{} `json:"data"`
}
