package model

// DefaultDistance 哨兵距离 (任一端缺少像素坐标时使用)
// 表示"相连但距离未测量"，等两端坐标齐全后由 Reconciler 更新为真实值
const DefaultDistance = 1e8

// LocationDistance 对应两个地点之间的一条带权无向边
//
// 边按无序点对唯一：入库前先用 NormalizePair 规范端点顺序，
// 配合 (location1_id, location2_id) 唯一索引保证同一对地点只有一条边。
type LocationDistance struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	Location1ID string  `json:"location1" gorm:"uniqueIndex:idx_location_pair;not null"`
	Location2ID string  `json:"location2" gorm:"uniqueIndex:idx_location_pair;not null"`
	Distance    float64 `json:"distance"` // 像素距离；未测量时为 DefaultDistance
}

// TableName 指定表名
func (LocationDistance) TableName() string {
	return "location_location_distances"
}

// NormalizePair 规范无序点对的存储顺序 (字典序小的在前)
// a-b 和 b-a 是同一条边
func NormalizePair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
