package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/blues/esl/internal/logger"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Fee      FeeConfig      `mapstructure:"fee"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
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

// ChainConfig 代币链配置。Enabled 为 false 时使用进程内代币（开发模式）。
type ChainConfig struct {
	Enabled      bool   `mapstructure:"enabled"`       // 是否接入链上代币
	ChainId      int64  `mapstructure:"chain_id"`      // 链ID
	RpcUrl       string `mapstructure:"rpc_url"`       // RPC节点URL
	PrivateKey   string `mapstructure:"private_key"`   // 托管账户私钥
	TokenAddress string `mapstructure:"token_address"` // ERC20代币合约地址
}

// FeeConfig 平台手续费配置，初始化后不可变
type FeeConfig struct {
	Rate        int64  `mapstructure:"rate"`         // 费率分子
	ScaleFactor int64  `mapstructure:"scale_factor"` // 费率分母
	Recipient   string `mapstructure:"recipient"`    // 手续费收款账户
	Custody     string `mapstructure:"custody"`      // 托管账户（链上模式下由私钥推导，此项忽略）
}

// Validate 校验手续费配置。分母非正是配置错误，不进入运行时路径。
func (f FeeConfig) Validate() error {
	if f.ScaleFactor <= 0 {
		return fmt.Errorf("fee scale_factor must be positive, got %d", f.ScaleFactor)
	}
	if f.Rate < 0 {
		return fmt.Errorf("fee rate must not be negative, got %d", f.Rate)
	}
	if f.Rate > f.ScaleFactor {
		return fmt.Errorf("fee rate %d exceeds scale_factor %d", f.Rate, f.ScaleFactor)
	}
	if f.Recipient == "" {
		return fmt.Errorf("fee recipient must not be empty")
	}
	return nil
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/esl")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "escrow_ledger")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.enabled", false)
	viper.SetDefault("chain.chain_id", 1)
	viper.SetDefault("fee.rate", 1)
	viper.SetDefault("fee.scale_factor", 100)
	viper.SetDefault("fee.recipient", "platform")
	viper.SetDefault("fee.custody", "custody")
	viper.SetDefault("task.interval", 60)
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

	if err := config.Fee.Validate(); err != nil {
		logger.Fatal("Invalid fee config: %v", err)
	}

	return &config
}
