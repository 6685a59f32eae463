package graph

import (
	"container/heap"
	"math"
	"slices"
)

// PathResult 最短路径查询结果
type PathResult struct {
	Distance float64  `json:"distance"` // 总距离 (像素)
	Path     []string `json:"path"`     // 途经地点名称序列 (含起点和终点)
}

// PriorityQueueItem 优先队列中的元素
type PriorityQueueItem struct {
	ID    string
	Cost  float64 // 从起点累计的距离
	Index int     // 在堆中的索引
}

// PriorityQueue 实现 heap.Interface 接口的优先队列
type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	return pq[i].Cost < pq[j].Cost
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*PriorityQueueItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // 避免内存泄漏
	item.Index = -1 // 标记为已移除
	*pq = old[0 : n-1]
	return item
}

// ShortestPath 使用 Dijkstra 算法计算两个地点之间的最短路径
// origin / destination 是地点名称；边权全部非负，哨兵距离也只是一个很大的正数
// 名称解析失败返回 ErrUnknownLocation，图上不连通返回 ErrNoPath
func (g *Graph) ShortestPath(origin, destination string) (PathResult, error) {
	start, ok := g.Resolve(origin)
	if !ok {
		return PathResult{}, ErrUnknownLocation
	}
	end, ok := g.Resolve(destination)
	if !ok {
		return PathResult{}, ErrUnknownLocation
	}

	// 初始化距离、前驱和访问标记
	dist := make(map[string]float64)
	prev := make(map[string]string)
	visited := make(map[string]bool)

	for id := range g.Nodes {
		dist[id] = math.Inf(1) // 无穷大
	}
	dist[start.ID] = 0

	// 初始化优先队列
	pq := make(PriorityQueue, 0)
	heap.Init(&pq)
	heap.Push(&pq, &PriorityQueueItem{ID: start.ID, Cost: 0})

	// Dijkstra 主循环
	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*PriorityQueueItem)
		currentID := current.ID

		// 如果已访问过，跳过
		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		// 如果到达终点，提前退出
		if currentID == end.ID {
			break
		}

		// 遍历邻居
		for _, edge := range g.Neighbors(currentID) {
			newCost := dist[currentID] + edge.Distance

			// 如果找到更短的路径
			if newCost < dist[edge.To] {
				dist[edge.To] = newCost
				prev[edge.To] = currentID
				heap.Push(&pq, &PriorityQueueItem{ID: edge.To, Cost: newCost})
			}
		}
	}

	// 如果没有找到路径
	if math.IsInf(dist[end.ID], 1) {
		return PathResult{}, ErrNoPath
	}

	// 回溯路径
	ids := []string{}
	for at := end.ID; at != ""; at = prev[at] {
		ids = append(ids, at)
		if at == start.ID {
			break
		}
	}
	slices.Reverse(ids)

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, g.Nodes[id].Name)
	}

	return PathResult{Distance: dist[end.ID], Path: names}, nil
}
