package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Model     ModelConfig     `mapstructure:"model"`
	OCR       OCRConfig       `mapstructure:"ocr"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	UploadDir string `mapstructure:"upload_dir"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Dbname   string `mapstructure:"dbname"`
	SslMode  string `mapstructure:"sslmode"`
}

type AuthConfig struct {
	JWTSecret        string `mapstructure:"jwt_secret"`
	TokenExpireHours int    `mapstructure:"token_expire_hours"`
}

type ModelConfig struct {
	ArtifactPath string  `mapstructure:"artifact_path"`
	Timezone     string  `mapstructure:"timezone"`  // 营运地区时区
	Tolerance    float64 `mapstructure:"tolerance"` // 合理性判断允许的价差
}

type OCRConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

type SchedulerConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	IntervalMin int  `mapstructure:"interval_min"` // 重新估价周期（分钟）
}

// LoadConfig 解析配置文件
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.upload_dir", "./uploads")
	viper.SetDefault("auth.token_expire_hours", 72)
	viper.SetDefault("model.artifact_path", "./random_forest_model.json")
	viper.SetDefault("model.timezone", "Asia/Taipei")
	viper.SetDefault("model.tolerance", 1)
	viper.SetDefault("ocr.timeout_sec", 30)
	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.interval_min", 30)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %v", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %v", err)
	}

	return &cfg, nil
}
