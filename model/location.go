package model

import (
	"strings"
	"time"
	"unicode"
)

// Point 代表一个经纬度点 (WGS84)
type Point struct {
	Lat float64 // 纬度
	Lng float64 // 经度
}

// PointXY 代表地图图片像素坐标系中的一个点
type PointXY struct {
	X float64 // 横向像素
	Y float64 // 纵向像素
}

// Location 对应校园地图上的一个地点 (场馆、楼栋、路口)
//
// ConnectedLocs 保存该地点声明的相邻地点名单 (逗号分隔的名称列表)，
// 是邻接关系的"意图"来源；真正的带权边存放在 LocationDistance 表中，
// 由 store.Reconciler 在每次保存时对齐。
type Location struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	StrID          string     `json:"str_id" gorm:"index"`
	Name           string     `json:"name" gorm:"uniqueIndex;not null"`
	ShortName      string     `json:"short_name,omitempty"`
	Description    string     `json:"description,omitempty"`
	ParentID       *string    `json:"parent,omitempty" gorm:"index"`        // 上级地点 (树形关系，不参与邻接图)
	ParentRelation string     `json:"parent_relation,omitempty"`
	GroupID        *int       `json:"group_id,omitempty" gorm:"index"`
	PixelX         *int       `json:"pixel_x,omitempty"`                    // 地图图片像素坐标 (可选)
	PixelY         *int       `json:"pixel_y,omitempty"`
	Lat            *float64   `json:"lat,omitempty"`                        // 地理坐标 (可选)
	Lng            *float64   `json:"lng,omitempty"`
	Reusable       bool       `json:"reusable" gorm:"index"`                // 是否可复用 (列表接口只返回可复用地点)
	ConnectedLocs  string     `json:"connected_locs,omitempty"`             // 相邻地点名称，逗号分隔；空串和 NULL 等价
	CreatedAt      time.Time  `json:"time_of_creation"`
	UpdatedAt      time.Time  `json:"-"`
}

// HasPixels 判断该地点是否有像素坐标
func (l *Location) HasPixels() bool {
	return l.PixelX != nil && l.PixelY != nil
}

// ConnectedNames 解析声明的相邻地点名单
// 空串和 NULL 都表示没有声明邻居；空白项会被丢弃
func (l *Location) ConnectedNames() []string {
	if l.ConnectedLocs == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(l.ConnectedLocs, ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// URLFriendly 把名称转换为 URL 友好的 str_id
// 例如: "Test Location & 0" -> "test-location--0"
func URLFriendly(name string) string {
	if name == "" {
		return ""
	}

	// 去掉首尾空白并把单词间空白替换为连字符
	temp := strings.Join(strings.Fields(strings.ToLower(name)), "-")

	// 只保留字母数字和连字符
	var b strings.Builder
	for _, c := range temp {
		if c == '-' || unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}
