package handler

import (
	"errors"
	"net/http"

	"campus-map/graph"
	"campus-map/model"

	"github.com/gin-gonic/gin"
)

// NearestRequest 最近地点查询请求 (像素坐标)
type NearestRequest struct {
	Xcor *float64 `json:"xcor" binding:"required"`
	Ycor *float64 `json:"ycor" binding:"required"`
}

// ShortestPathRequest 最短路径查询请求 (地点名称)
type ShortestPathRequest struct {
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// NearestLocations 最近地点查询接口
// 返回按距离升序排列的地点列表；没有带坐标的地点时返回空列表
func NearestLocations(c *gin.Context) {
	var req NearestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	g, err := buildGraph()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "地图数据加载失败"})
		return
	}

	ranked, err := g.Nearest(*req.Xcor, *req.Ycor, 0, nil)
	if errors.Is(err, graph.ErrNoCoordinates) {
		// 宁可返回空列表，也不返回截断或错序的结果
		c.JSON(http.StatusOK, []model.Location{})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "最近地点查询失败"})
		return
	}

	locs := make([]model.Location, 0, len(ranked))
	for _, r := range ranked {
		locs = append(locs, *r.Location)
	}
	c.JSON(http.StatusOK, locs)
}

// ShortestPath 最短路径查询接口
// 在距离索引构成的图上跑 Dijkstra，返回总距离和途经地点名称
func ShortestPath(c *gin.Context) {
	var req ShortestPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	g, err := buildGraph()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "地图数据加载失败"})
		return
	}

	result, err := g.ShortestPath(req.Origin, req.Destination)
	if errors.Is(err, graph.ErrUnknownLocation) {
		c.JSON(http.StatusNotFound, gin.H{"error": "起点或终点不存在"})
		return
	}
	if errors.Is(err, graph.ErrNoPath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "两地点之间没有路径"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "最短路径查询失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"distance": result.Distance,
		"path":     result.Path,
	})
}

// buildGraph 用当前数据构建查询用的内存图
// 每次查询各自构建，读到的是一致的快照，不会看到对齐进行到一半的状态
func buildGraph() (*graph.Graph, error) {
	locs, edges, err := Locations.Snapshot()
	if err != nil {
		return nil, err
	}
	return graph.Build(locs, edges), nil
}
