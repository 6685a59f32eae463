package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"campus-map/model"
	"campus-map/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	// 从环境变量读取配置 (为了 Docker 部署方便)
	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "campus")
	password := getEnvOrDefault("DB_PASSWORD", "campus")
	dbname := getEnvOrDefault("DB_NAME", "campusmap")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Shanghai",
		host, user, password, dbname, port,
	)

	// 带重试的数据库连接 (Docker 启动时数据库可能还没准备好)
	var err error
	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("等待数据库就绪... (%d/%d): %v", i+1, maxRetries, err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("无法连接数据库: %v", err)
	}

	// 自动迁移模式 (自动创建表结构)
	err = DB.AutoMigrate(&model.User{}, &model.Location{}, &model.LocationDistance{})
	if err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	// 检查是否需要导入初始数据
	// 导入走 LocationStore.Save，邻接边会在导入时一并对齐
	var locCount int64
	DB.Model(&model.Location{}).Count(&locCount)
	if locCount == 0 {
		log.Println("检测到数据库为空，正在导入 locations.json...")
		if err := store.NewLocationStore(DB).ImportSeed("locations.json"); err != nil {
			log.Printf("警告: 导入地点数据失败: %v", err)
		} else {
			log.Println("地点数据导入成功!")
		}
	}

	log.Println("数据库连接并初始化成功！")
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
