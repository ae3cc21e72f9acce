package models

import (
	"time"
)

// 会话状态
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// 游客用户（访客 cookie 的 uuid 即主键）
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Username  string    `json:"username" gorm:"type:varchar(64)"`
	IsGuest   bool      `json:"is_guest" gorm:"default:true"`
	Seeded    bool      `json:"-" gorm:"default:false"` // 默认分类是否已经初始化过
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at"`
}

// 活动分类（洗漱、吃饭、学习……）
// 删除是软删除：isActive=false，并级联到它的事项
type ActivityCategory struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string    `json:"user_id" gorm:"type:uuid;index"`
	Name        string    `json:"name" gorm:"type:varchar(64)"`
	Description string    `json:"description"`
	Icon        string    `json:"icon" gorm:"type:varchar(32)"`
	Color       string    `json:"color" gorm:"type:varchar(16)"`
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// 分类下的具体活动事项
type ActivityItem struct {
	ID               string    `json:"id" gorm:"primaryKey;type:uuid"`
	CategoryID       string    `json:"category_id" gorm:"type:uuid;index"`
	UserID           string    `json:"user_id" gorm:"type:uuid;index"`
	Name             string    `json:"name" gorm:"type:varchar(64)"`
	Description      string    `json:"description"`
	EstimatedMinutes int       `json:"estimated_minutes"` // 预计用时（分钟）
	IsActive         bool      `json:"is_active" gorm:"default:true;index"`
	SortOrder        int       `json:"sort_order"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// 一次计时会话
// 不变量：ActiveSeconds = TotalSeconds - PausedSeconds；
// PauseCount = 已闭合（ResumeAt 非空）的暂停记录数；
// 同一时刻最多一条未闭合的暂停记录
type TimerSession struct {
	ID            string        `json:"id" gorm:"primaryKey;type:uuid"`
	UserID        string        `json:"user_id" gorm:"type:uuid;index"`
	ItemID        string        `json:"item_id" gorm:"type:uuid;index"`
	CategoryID    string        `json:"category_id" gorm:"type:uuid;index"`
	Status        string        `json:"status" gorm:"type:varchar(16);index"` // active、paused、completed、cancelled
	StartAt       time.Time     `json:"start_at"`
	EndAt         *time.Time    `json:"end_at"`
	TotalSeconds  int64         `json:"total_seconds"`  // 结束时写入：墙钟跨度
	ActiveSeconds int64         `json:"active_seconds"` // 结束时写入：墙钟跨度减去暂停
	PausedSeconds int64         `json:"paused_seconds"` // 累计暂停秒数
	PauseCount    int           `json:"pause_count"`
	Feedback      *string       `json:"feedback,omitempty"`
	Rating        *int          `json:"rating,omitempty"`
	PauseRecords  []PauseRecord `json:"pause_records,omitempty" gorm:"foreignKey:SessionID"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// 一次暂停（暂停->恢复，或者未恢复就停表）
type PauseRecord struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid"`
	SessionID       string     `json:"session_id" gorm:"type:uuid;index"`
	PauseAt         time.Time  `json:"pause_at"`
	ResumeAt        *time.Time `json:"resume_at"`
	DurationSeconds int64      `json:"duration_seconds"` // 闭合时写入
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// 每日汇总：会话完成后由后台任务重算，供记录页消费
type DailySummary struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"type:uuid;index:idx_summary_user_date,unique"`
	Date         string    `json:"date" gorm:"type:varchar(10);index:idx_summary_user_date,unique"` // YYYY-MM-DD
	TotalSeconds int64     `json:"total_seconds"`
	SessionCount int       `json:"session_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}
