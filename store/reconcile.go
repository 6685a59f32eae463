package store

import (
	"fmt"

	"campus-map/model"
	"campus-map/utils"
)

// NameResolver 按名称解析地点；名称不存在时返回 (nil, nil)
type NameResolver interface {
	FindByName(name string) (*model.Location, error)
}

// Reconciler 邻接关系对齐器
//
// 把地点声明的邻居名单 (connected_locs) 的变化转换为距离索引上的
// 增/删/改操作。采用差量对齐而不是全删重建，这样只增删一个邻居时
// 其余边和它们的距离不受影响。
// 必须和触发它的地点写入跑在同一个事务里，保证记录和边要么都提交
// 要么都回滚。
type Reconciler struct {
	locs  NameResolver
	edges EdgeIndex
}

// NewReconciler 创建对齐器
func NewReconciler(locs NameResolver, edges EdgeIndex) *Reconciler {
	return &Reconciler{locs: locs, edges: edges}
}

// Reconcile 根据邻居名单的前后差异对齐距离索引
//
// previous 是保存前的邻居名单 (首次保存时为空)，updated 是新名单。
// 新名单里解析不到的名称静默跳过——名单是"尽力而为"的意图，容忍
// 笔误和尚未创建的地点；但地点引用自己会在索引边界被拒绝 (ErrSelfEdge)。
// 即使名单没变，新名单里每条边的距离也会重算一遍，所以只改坐标
// 也会同步到已有的边上。
func (r *Reconciler) Reconcile(loc *model.Location, previous, updated []string) error {
	// 1. 解析新名单并逐条 upsert (距离从坐标重算)
	for _, name := range updated {
		neighbor, err := r.locs.FindByName(name)
		if err != nil {
			return fmt.Errorf("解析邻居 %q 失败: %w", name, err)
		}
		if neighbor == nil {
			continue // 名称解析不到，跳过
		}
		if err := r.edges.UpsertEdge(loc.ID, neighbor.ID, edgeDistance(loc, neighbor)); err != nil {
			return fmt.Errorf("更新边 %s-%s 失败: %w", loc.Name, neighbor.Name, err)
		}
	}

	// 2. 删除 previous - updated 差集里能解析到的邻居对应的边
	for _, name := range subtract(previous, updated) {
		removed, err := r.locs.FindByName(name)
		if err != nil {
			return fmt.Errorf("解析被删邻居 %q 失败: %w", name, err)
		}
		if removed == nil {
			continue
		}
		if err := r.edges.RemoveEdge(loc.ID, removed.ID); err != nil {
			return fmt.Errorf("删除边 %s-%s 失败: %w", loc.Name, removed.Name, err)
		}
	}

	return nil
}

// Purge 地点删除入口：无条件删除该地点的所有边，不看邻居名单
func (r *Reconciler) Purge(loc *model.Location) error {
	if err := r.edges.RemoveAllEdgesFor(loc.ID); err != nil {
		return fmt.Errorf("清除 %s 的邻接边失败: %w", loc.Name, err)
	}
	return nil
}

// edgeDistance 计算边权：两端都有像素坐标时取欧氏距离，否则用哨兵值
func edgeDistance(a, b *model.Location) float64 {
	if a.HasPixels() && b.HasPixels() {
		return utils.PixelDistance(
			float64(*a.PixelX), float64(*a.PixelY),
			float64(*b.PixelX), float64(*b.PixelY),
		)
	}
	return model.DefaultDistance
}

// subtract 计算 a - b 的集合差 (按名称)
func subtract(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, name := range b {
		inB[name] = true
	}
	var diff []string
	for _, name := range a {
		if !inB[name] {
			diff = append(diff, name)
		}
	}
	return diff
}
