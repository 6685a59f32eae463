package store

import (
	"errors"
	"fmt"

	"campus-map/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSelfEdge 不允许地点和自己连边
var ErrSelfEdge = errors.New("地点不能和自己相连")

// Neighbor 某个地点的一条邻接记录
type Neighbor struct {
	ID       string  // 邻居地点 ID
	Distance float64 // 边权
}

// EdgeIndex 距离索引的操作集合
// 边只能通过 Reconciler 写入，handler 层不直接操作
type EdgeIndex interface {
	UpsertEdge(a, b string, distance float64) error
	RemoveEdge(a, b string) error
	RemoveAllEdgesFor(id string) error
	NeighborsOf(id string) ([]Neighbor, error)
}

// DistanceIndex 基于 location_location_distances 表的距离索引
// db 可以是事务句柄，Reconciler 在保存事务内使用时传入 tx
type DistanceIndex struct {
	db *gorm.DB
}

// NewDistanceIndex 创建距离索引
func NewDistanceIndex(db *gorm.DB) *DistanceIndex {
	return &DistanceIndex{db: db}
}

// UpsertEdge 插入 a-b 边，若已存在则覆盖距离
// 点对无序：a-b 和 b-a 是同一条边；a == b 返回 ErrSelfEdge
func (ix *DistanceIndex) UpsertEdge(a, b string, distance float64) error {
	if a == b {
		return ErrSelfEdge
	}
	l1, l2 := model.NormalizePair(a, b)

	var edge model.LocationDistance
	err := ix.db.Where("location1_id = ? AND location2_id = ?", l1, l2).First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		edge = model.LocationDistance{
			ID:          uuid.NewString(),
			Location1ID: l1,
			Location2ID: l2,
			Distance:    distance,
		}
		if err := ix.db.Create(&edge).Error; err != nil {
			return fmt.Errorf("插入边失败: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("查询边失败: %w", err)
	}

	if err := ix.db.Model(&edge).Update("distance", distance).Error; err != nil {
		return fmt.Errorf("更新边距离失败: %w", err)
	}
	return nil
}

// RemoveEdge 删除 a-b 边；边不存在时静默返回
func (ix *DistanceIndex) RemoveEdge(a, b string) error {
	l1, l2 := model.NormalizePair(a, b)
	err := ix.db.
		Where("location1_id = ? AND location2_id = ?", l1, l2).
		Delete(&model.LocationDistance{}).Error
	if err != nil {
		return fmt.Errorf("删除边失败: %w", err)
	}
	return nil
}

// RemoveAllEdgesFor 删除与指定地点相连的所有边 (地点删除时调用)
func (ix *DistanceIndex) RemoveAllEdgesFor(id string) error {
	err := ix.db.
		Where("location1_id = ? OR location2_id = ?", id, id).
		Delete(&model.LocationDistance{}).Error
	if err != nil {
		return fmt.Errorf("删除地点关联边失败: %w", err)
	}
	return nil
}

// NeighborsOf 返回与指定地点相连的所有 (邻居, 距离) 记录
func (ix *DistanceIndex) NeighborsOf(id string) ([]Neighbor, error) {
	var edges []model.LocationDistance
	err := ix.db.
		Where("location1_id = ? OR location2_id = ?", id, id).
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("查询邻接边失败: %w", err)
	}

	neighbors := make([]Neighbor, 0, len(edges))
	for _, e := range edges {
		other := e.Location1ID
		if other == id {
			other = e.Location2ID
		}
		neighbors = append(neighbors, Neighbor{ID: other, Distance: e.Distance})
	}
	return neighbors, nil
}
