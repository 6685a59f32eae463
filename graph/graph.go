package graph

import (
	"errors"
	"sort"

	"campus-map/model"
	"campus-map/utils"
)

// 查询相关的错误
var (
	// ErrNoCoordinates 没有任何带像素坐标的候选地点，无法做最近地点排序
	ErrNoCoordinates = errors.New("没有带坐标的地点可供查询")
	// ErrUnknownLocation 名称无法解析为已知地点
	ErrUnknownLocation = errors.New("地点不存在")
	// ErrNoPath 图上两点之间不连通
	ErrNoPath = errors.New("两地点之间没有路径")
)

// Edge 邻接表中的一条出边
type Edge struct {
	To       string  // 邻居地点 ID
	Distance float64 // 边权 (像素距离或哨兵值)
}

// Graph 地点图的内存快照，用于路径规划和最近地点查询
// 由 store 层的当前数据构建；每次查询各自构建，不跨请求共享
type Graph struct {
	Nodes   map[string]*model.Location // 节点字典 (ID -> Location)
	AdjList map[string][]Edge          // 邻接表 (ID -> 出边列表)

	byName  map[string]string // 名称 -> ID (邻居声明和查询接口都按名称引用地点)
	ordered []*model.Location // 按插入顺序保存，排序并列时保证稳定
}

// Build 从地点记录和边记录构建图
// 每条边记录是无向的，这里展开成两个方向的邻接项
func Build(locs []model.Location, edges []model.LocationDistance) *Graph {
	g := &Graph{
		Nodes:   make(map[string]*model.Location),
		AdjList: make(map[string][]Edge),
		byName:  make(map[string]string),
	}

	for i := range locs {
		loc := &locs[i]
		g.Nodes[loc.ID] = loc
		g.byName[loc.Name] = loc.ID
		g.ordered = append(g.ordered, loc)
	}

	for _, e := range edges {
		// 端点缺失的边直接忽略 (比如快照期间地点刚被删除)
		if g.Nodes[e.Location1ID] == nil || g.Nodes[e.Location2ID] == nil {
			continue
		}
		g.AdjList[e.Location1ID] = append(g.AdjList[e.Location1ID], Edge{To: e.Location2ID, Distance: e.Distance})
		g.AdjList[e.Location2ID] = append(g.AdjList[e.Location2ID], Edge{To: e.Location1ID, Distance: e.Distance})
	}

	return g
}

// Neighbors 获取指定地点的所有出边
func (g *Graph) Neighbors(id string) []Edge {
	return g.AdjList[id]
}

// Resolve 按名称解析地点
func (g *Graph) Resolve(name string) (*model.Location, bool) {
	id, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return g.Nodes[id], true
}

// Ranked 最近地点查询的一个结果项
type Ranked struct {
	Location *model.Location
	Distance float64 // 到查询点的像素距离
}

// Nearest 返回距查询点 (x, y) 最近的 k 个地点，按距离升序排列
// 没有像素坐标的地点不参与排序；filter 为 nil 时不做额外过滤
// k <= 0 表示返回全部候选；没有任何候选时返回 ErrNoCoordinates
func (g *Graph) Nearest(x, y float64, k int, filter func(*model.Location) bool) ([]Ranked, error) {
	var ranked []Ranked
	for _, loc := range g.ordered {
		if !loc.HasPixels() {
			continue
		}
		if filter != nil && !filter(loc) {
			continue
		}
		d := utils.PixelDistance(x, y, float64(*loc.PixelX), float64(*loc.PixelY))
		ranked = append(ranked, Ranked{Location: loc, Distance: d})
	}

	if len(ranked) == 0 {
		return nil, ErrNoCoordinates
	}

	// 距离相同的按名称排，保证结果稳定
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Distance != ranked[j].Distance {
			return ranked[i].Distance < ranked[j].Distance
		}
		return ranked[i].Location.Name < ranked[j].Location.Name
	})

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}
