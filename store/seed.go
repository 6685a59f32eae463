package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"campus-map/model"
)

// seedLocation locations.json 中的一条地点记录
type seedLocation struct {
	Name          string   `json:"name"`
	ShortName     string   `json:"short_name,omitempty"`
	Description   string   `json:"description,omitempty"`
	GroupID       *int     `json:"group_id,omitempty"`
	PixelX        *int     `json:"pixel_x,omitempty"`
	PixelY        *int     `json:"pixel_y,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
	Reusable      bool     `json:"reusable"`
	ConnectedLocs string   `json:"connected_locs,omitempty"`
}

// ImportSeed 从 JSON 文件导入初始地点数据
//
// 导入走 Save，所以邻接边会和正常请求一样被对齐出来。
// 第一遍建记录时名单里引用的地点可能还没创建 (会被静默跳过)，
// 所以再保存一遍补齐这些前向引用的边。
func (s *LocationStore) ImportSeed(filepath string) error {
	file, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}

	var seeds []seedLocation
	if err := json.Unmarshal(file, &seeds); err != nil {
		return fmt.Errorf("解析 JSON 失败: %w", err)
	}

	// 第一遍：建记录
	for _, sd := range seeds {
		loc := model.Location{
			Name:          sd.Name,
			ShortName:     sd.ShortName,
			Description:   sd.Description,
			GroupID:       sd.GroupID,
			PixelX:        sd.PixelX,
			PixelY:        sd.PixelY,
			Lat:           sd.Lat,
			Lng:           sd.Lng,
			Reusable:      sd.Reusable,
			ConnectedLocs: sd.ConnectedLocs,
		}
		if err := s.Save(&loc); err != nil {
			return fmt.Errorf("导入地点 %q 失败: %w", sd.Name, err)
		}
	}

	// 第二遍：补前向引用的边
	for _, sd := range seeds {
		loc, err := s.FindByName(sd.Name)
		if err != nil {
			return err
		}
		if loc == nil {
			continue
		}
		if err := s.Save(loc); err != nil {
			return fmt.Errorf("补齐地点 %q 的边失败: %w", sd.Name, err)
		}
	}

	log.Printf("导入了 %d 个地点", len(seeds))
	return nil
}
