package handler

import (
	"errors"
	"net/http"
	"strconv"

	"campus-map/model"
	"campus-map/store"

	"github.com/gin-gonic/gin"
)

// Locations 全局地点仓库 (应在 main 中初始化)
var Locations LocationProvider

// LocationProvider handler 层需要的地点存取能力
type LocationProvider interface {
	List(excludeGroup *int) ([]model.Location, error)
	FindByID(id string) (*model.Location, error)
	Search(query string) ([]model.Location, error)
	Save(loc *model.Location) error
	Delete(id string) error
	Snapshot() ([]model.Location, []model.LocationDistance, error)
}

// LocationRequest 地点创建/更新请求
type LocationRequest struct {
	Name           string   `json:"name" binding:"required"`
	ShortName      string   `json:"short_name"`
	Description    string   `json:"description"`
	ParentID       *string  `json:"parent"`
	ParentRelation string   `json:"parent_relation"`
	GroupID        *int     `json:"group_id"`
	PixelX         *int     `json:"pixel_x"`
	PixelY         *int     `json:"pixel_y"`
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	Reusable       bool     `json:"reusable"`
	ConnectedLocs  string   `json:"connected_locs"` // 相邻地点名称，逗号分隔
}

// ListLocations 获取可复用地点列表
// 支持 ?exclude_group=<id> 排除指定分组
func ListLocations(c *gin.Context) {
	var excludeGroup *int
	if raw := c.Query("exclude_group"); raw != "" {
		gid, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "exclude_group 参数错误: " + raw})
			return
		}
		excludeGroup = &gid
	}

	locs, err := Locations.List(excludeGroup)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询地点列表失败"})
		return
	}

	c.JSON(http.StatusOK, locs)
}

// GetLocation 根据 ID 获取地点信息
func GetLocation(c *gin.Context) {
	loc, err := Locations.FindByID(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "地点不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询地点失败"})
		return
	}

	c.JSON(http.StatusOK, loc)
}

// SearchLocations 搜索地点 (根据名称模糊匹配)
func SearchLocations(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少搜索关键词"})
		return
	}

	results, err := Locations.Search(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "搜索地点失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// CreateLocation 创建地点
// 保存时会按 connected_locs 对齐邻接边
func CreateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	loc := model.Location{
		Name:           req.Name,
		ShortName:      req.ShortName,
		Description:    req.Description,
		ParentID:       req.ParentID,
		ParentRelation: req.ParentRelation,
		GroupID:        req.GroupID,
		PixelX:         req.PixelX,
		PixelY:         req.PixelY,
		Lat:            req.Lat,
		Lng:            req.Lng,
		Reusable:       req.Reusable,
		ConnectedLocs:  req.ConnectedLocs,
	}

	if err := Locations.Save(&loc); err != nil {
		if errors.Is(err, store.ErrSelfEdge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "地点不能把自己列为邻居"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存地点失败"})
		return
	}

	c.JSON(http.StatusCreated, loc)
}

// UpdateLocation 更新地点
// 坐标或邻居名单的变化会同步到距离索引
func UpdateLocation(c *gin.Context) {
	loc, err := Locations.FindByID(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "地点不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询地点失败"})
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	loc.Name = req.Name
	loc.ShortName = req.ShortName
	loc.Description = req.Description
	loc.ParentID = req.ParentID
	loc.ParentRelation = req.ParentRelation
	loc.GroupID = req.GroupID
	loc.PixelX = req.PixelX
	loc.PixelY = req.PixelY
	loc.Lat = req.Lat
	loc.Lng = req.Lng
	loc.Reusable = req.Reusable
	loc.ConnectedLocs = req.ConnectedLocs

	if err := Locations.Save(loc); err != nil {
		if errors.Is(err, store.ErrSelfEdge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "地点不能把自己列为邻居"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存地点失败"})
		return
	}

	c.JSON(http.StatusOK, loc)
}

// DeleteLocation 删除地点 (连带删除它的所有邻接边)
func DeleteLocation(c *gin.Context) {
	err := Locations.Delete(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "地点不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除地点失败"})
		return
	}

	c.Status(http.StatusNoContent)
}
