package models

// 新用户的默认分类和事项，首次登录时写入一份（User.Seeded 保证只做一次）
// Items 的 key 对应 SeedCategory 在切片中的下标

type SeedItem struct {
	Name             string
	Description      string
	EstimatedMinutes int
}

type SeedCategory struct {
	Name        string
	Description string
	Icon        string
	Color       string
	Items       []SeedItem
}

var DefaultCatalog = []SeedCategory{
	{
		Name:        "洗漱",
		Description: "日常个人护理",
		Icon:        "droplet",
		Color:       "#4FC3F7",
		Items: []SeedItem{
			{Name: "早晨洗漱", Description: "刷牙洗脸", EstimatedMinutes: 15},
			{Name: "晚间洗漱", Description: "洗澡刷牙", EstimatedMinutes: 30},
		},
	},
	{
		Name:        "吃饭",
		Description: "一日三餐",
		Icon:        "utensils",
		Color:       "#FFB74D",
		Items: []SeedItem{
			{Name: "早餐", EstimatedMinutes: 20},
			{Name: "午餐", EstimatedMinutes: 40},
			{Name: "晚餐", EstimatedMinutes: 40},
		},
	},
	{
		Name:        "学习",
		Description: "专注学习时间",
		Icon:        "book",
		Color:       "#81C784",
		Items: []SeedItem{
			{Name: "专业课", Description: "课程学习", EstimatedMinutes: 90},
			{Name: "阅读", Description: "课外阅读", EstimatedMinutes: 60},
			{Name: "背单词", EstimatedMinutes: 30},
		},
	},
	{
		Name:        "运动",
		Description: "锻炼身体",
		Icon:        "activity",
		Color:       "#E57373",
		Items: []SeedItem{
			{Name: "跑步", EstimatedMinutes: 30},
			{Name: "健身", EstimatedMinutes: 60},
		},
	},
	{
		Name:        "休息",
		Description: "放松与睡眠",
		Icon:        "moon",
		Color:       "#9575CD",
		Items: []SeedItem{
			{Name: "午休", EstimatedMinutes: 30},
			{Name: "散步", EstimatedMinutes: 20},
		},
	},
}
