// app/seenmw.go
package app

import (
	"time"

	"librarysystem/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TouchLastSeen(repo *db.Repo, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("librarianID")
		if !ok {
			c.Next()
			return
		}
		lid, _ := v.(string)
		if lid == "" {
			c.Next()
			return
		}

		key := "librarian:lastseen:" + lid
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = repo.TouchLibrarianSeen(c, lid) // 忽略错误，不阻塞请求
		}
		c.Next()
	}
}
