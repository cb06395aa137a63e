package request

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserID returns the authenticated user id set by middleware.JWTAuth.
func UserID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

func Role(c *gin.Context) string {
	return c.GetString("role")
}

func IsAdmin(c *gin.Context) bool {
	return Role(c) == "admin"
}

// ParamID parses a positive int64 path parameter.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// QueryInt64 parses an optional int64 query parameter; zero when absent or
// malformed.
func QueryInt64(c *gin.Context, name string) int64 {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
