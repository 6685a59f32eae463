package main

import (
	"fmt"
	"log"

	"campus-map/db"
	"campus-map/handler"
	"campus-map/store"

	"github.com/gin-gonic/gin"
)

func main() {
	fmt.Println("=== 欢迎使用 Campus Map - 校园地图信息系统 ===")

	// 1. 初始化数据库
	// 连接 PostgreSQL，自动迁移表结构
	// 如果是第一次运行，会自动将 locations.json 的数据导入数据库
	db.InitDB()

	// 2. 初始化仓库并注入 handler
	// 地点的保存/删除会在仓库内部对齐邻接边，handler 不直接碰边表
	handler.Locations = store.NewLocationStore(db.DB)
	handler.Users = store.NewUserStore(db.DB)

	// 3. 初始化 Gin 引擎
	r := gin.Default()

	// 4. 配置路由
	setupRoutes(r)

	// 5. 启动服务器
	fmt.Println("\n服务器启动中...")
	fmt.Println("访问地址: http://localhost:8080")
	fmt.Println("API 文档:")
	fmt.Println("  - POST   /api/login             - 用户登录")
	fmt.Println("  - POST   /api/register          - 用户注册")
	fmt.Println("  - GET    /api/locations         - 获取可复用地点列表")
	fmt.Println("  - GET    /api/locations/search  - 搜索地点")
	fmt.Println("  - GET    /api/locations/:id     - 获取指定地点")
	fmt.Println("  - POST   /api/locations         - 创建地点 (需登录)")
	fmt.Println("  - PUT    /api/locations/:id     - 更新地点 (需登录)")
	fmt.Println("  - DELETE /api/locations/:id     - 删除地点 (需登录)")
	fmt.Println("  - POST   /api/nearest/          - 最近地点查询")
	fmt.Println("  - POST   /api/shortestpath/     - 最短路径查询")
	fmt.Println("\n按 Ctrl+C 退出")

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}

// setupRoutes 配置路由
func setupRoutes(r *gin.Engine) {
	// CORS 跨域中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "ok",
		})
	})

	// API 路由组
	api := r.Group("/api")
	{
		// 公开接口 (无需认证)
		api.POST("/login", handler.Login)
		api.POST("/register", handler.Register)

		// 地点查询接口
		api.GET("/locations", handler.ListLocations)
		api.GET("/locations/search", handler.SearchLocations)
		api.GET("/locations/:id", handler.GetLocation)

		// 空间查询接口
		api.POST("/nearest/", handler.NearestLocations)
		api.POST("/shortestpath/", handler.ShortestPath)

		// 地点写接口 (需认证)
		authorized := api.Group("/")
		authorized.Use(handler.AuthMiddleware())
		{
			authorized.POST("/locations", handler.CreateLocation)
			authorized.PUT("/locations/:id", handler.UpdateLocation)
			authorized.DELETE("/locations/:id", handler.DeleteLocation)
		}
	}
}
