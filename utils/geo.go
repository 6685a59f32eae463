package utils

import (
	"campus-map/model"
	"math"
)

// EarthRadius WGS84 参考椭球长半轴 (米)
const EarthRadius = 6378137.0

// DegreesToRadians 角度转弧度
func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

// PixelDistance 计算两个像素坐标点之间的欧几里得距离
// 用于 Reconciler 计算边的权重以及最近地点排序
func PixelDistance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// HaversineDistance Haversine 公式 (直接计算两点间球面距离)
// 用于地理坐标 (lat/lng) 之间的距离估算
// 精度：高，适用于全球范围
func HaversineDistance(p1, p2 model.Point) float64 {
	lat1 := DegreesToRadians(p1.Lat)
	lon1 := DegreesToRadians(p1.Lng)
	lat2 := DegreesToRadians(p2.Lat)
	lon2 := DegreesToRadians(p2.Lng)

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	// a = sin²(Δlat/2) + cos(lat1) * cos(lat2) * sin²(Δlon/2)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// c = 2 * atan2(√a, √(1-a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * c
}
