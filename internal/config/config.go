package config

import (
	"github.com/fundbridge/dealroom/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuthConfig 身份认证配置
type AuthConfig struct {
	JwtSecret     string `mapstructure:"jwt_secret"`      // JWT 签名密钥
	TokenTTLHours int    `mapstructure:"token_ttl_hours"` // 令牌有效期（小时）
	AdminEmail    string `mapstructure:"admin_email"`     // 预置管理员邮箱
	AdminPassword string `mapstructure:"admin_password"`  // 预置管理员密码
}

// StorageConfig 附件存储配置
type StorageConfig struct {
	Dir     string `mapstructure:"dir"`      // 文件落盘目录
	BaseURL string `mapstructure:"base_url"` // 对外访问地址前缀
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	ReminderInterval int `mapstructure:"reminder_interval"`  // 秒
	ReminderAgeHours int `mapstructure:"reminder_age_hours"` // 超过该时长未处理的请求触发提醒
	DigestInterval   int `mapstructure:"digest_interval"`    // 秒
}

// NotifyConfig 通知分发配置
type NotifyConfig struct {
	PoolSize int    `mapstructure:"pool_size"` // 发送协程池大小
	From     string `mapstructure:"from"`      // 发件地址
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger 配置接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger 配置接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger 配置接口
func (l LogConfig) GetFile() string {
	return l.File
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/dealroom")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "dealroom")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.token_ttl_hours", 24)
	viper.SetDefault("auth.admin_email", "")
	viper.SetDefault("auth.admin_password", "")
	viper.SetDefault("storage.dir", "data/documents")
	viper.SetDefault("storage.base_url", "/files")
	viper.SetDefault("scheduler.reminder_interval", 3600)
	viper.SetDefault("scheduler.reminder_age_hours", 48)
	viper.SetDefault("scheduler.digest_interval", 86400)
	viper.SetDefault("notify.pool_size", 8)
	viper.SetDefault("notify.from", "noreply@dealroom.local")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
