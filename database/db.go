package database

import (
	"fmt"

	"github.com/Julie983186/DynamicPricing/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(host, port, user, password, dbname, sslmode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: " + err.Error())
	}

	// 先确保扩展开启
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	// 自动迁移表结构
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.History{},
	)
	if err != nil {
		return nil, fmt.Errorf("数据库迁移失败: " + err.Error())
	}
	fmt.Println("✅ 数据库初始化完成，表结构已就绪")
	return db, nil
}
