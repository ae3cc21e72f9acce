package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string // 运行环境：dev 或 prod
	Addr      string // 服务绑定地址，例如 :3001
	JWTSecret string // JWT 签名密钥（游客身份验证用）

	// 数据库配置：dev 默认用纯 Go 的 sqlite，上线切 DB_DRIVER=postgres
	DBDriver   string // sqlite 或 postgres
	SQLitePath string // sqlite 数据库文件路径
	PGUser     string // 数据库用户名
	PGPass     string // 数据库密码
	PGDB       string // 数据库名
	PGHost     string // 数据库服务器地址
	PGPort     string // 数据库服务器端口

	AllowOrigins  string // CORS 允许的来源（逗号分隔）
	MinSessionSec int64  // 低于该秒数的会话不计入每日汇总
	DailyEditCap  int    // 每个游客每天允许的分类/事项修改次数
}

// Load 从 .env 文件和环境变量读取配置
// 优先级：环境变量 > .env 文件 > 默认值
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		Env:           get("ENV", "dev"),
		Addr:          get("ADDR", ":3001"),
		JWTSecret:     get("JWT_SECRET", "dev-guest-secret"),
		DBDriver:      get("DB_DRIVER", "sqlite"),
		SQLitePath:    get("SQLITE_PATH", "dayflow.db"),
		PGUser:        get("PGUSER", "app"),
		PGPass:        get("PGPASSWORD", "app"),
		PGDB:          get("PGDATABASE", "appdb"),
		PGHost:        get("PGHOST", "localhost"),
		PGPort:        get("PGPORT", "5432"),
		AllowOrigins:  get("ALLOW_ORIGINS", ""),
		MinSessionSec: getInt64("MIN_SESSION_SEC", 60),
		DailyEditCap:  int(getInt64("DAILY_EDIT_CAP", 10)),
	}
	return c, nil
}

// DSN 拼 PostgreSQL 的连接串（DB_DRIVER=postgres 时用）
// sslmode=disable 用于开发环境（生产环境应改为 require）
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Shanghai",
		c.PGHost, c.PGUser, c.PGPass, c.PGDB, c.PGPort,
	)
}

// get 从环境变量获取值，如果为空则返回默认值
// 这样可以方便地处理可选配置，避免每个地方都写 if 判断
func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getInt64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
