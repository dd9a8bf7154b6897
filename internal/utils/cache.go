package utils

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache 全局缓存实例，目前只用于登录失败计数
var Cache *cache.Cache

// InitCache 初始化缓存
func InitCache() {
	// 默认过期时间5分钟，清理间隔10分钟
	Cache = cache.New(5*time.Minute, 10*time.Minute)
}

// CacheGet 获取缓存值
func CacheGet(key string) (interface{}, bool) {
	return Cache.Get(key)
}

// CacheSet 设置缓存值
func CacheSet(key string, value interface{}, duration time.Duration) {
	Cache.Set(key, value, duration)
}

// CacheDelete 删除缓存
func CacheDelete(key string) {
	Cache.Delete(key)
}

// CountFailure 记录一次失败并返回窗口内的累计次数。
// 每次失败都会重置过期时间，窗口内无新失败则计数自动清零。
func CountFailure(key string, window time.Duration) int {
	count := 1
	if v, ok := Cache.Get(key); ok {
		count = v.(int) + 1
	}
	Cache.Set(key, count, window)
	return count
}
