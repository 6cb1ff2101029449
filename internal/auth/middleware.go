package auth

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const identityContextKey = "__admin_identity"

// LoginPath 是未登录访问后台页面时的跳转目标。
const LoginPath = "/admin/login"

// RequireAPI 保护 JSON 接口：未登录直接返回 401，不会进入后续 handler。
func RequireAPI(gate Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gate.Identify(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		attach(c, id)
		c.Next()
	}
}

// RequirePage 保护后台页面：未登录时重定向到登录页，并带上原始路径。
func RequirePage(gate Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gate.Identify(c)
		if err != nil {
			target := LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		attach(c, id)
		c.Next()
	}
}

// Optional 尝试解析身份但不拦截请求，用于公共页面展示后台入口等场景。
func Optional(gate Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := gate.Identify(c); err == nil {
			attach(c, id)
		}
		c.Next()
	}
}

// Current 返回当前请求上的管理员身份，未登录时为 nil。
func Current(c *gin.Context) *Identity {
	if v, ok := c.Get(identityContextKey); ok {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}
	return FromContext(c.Request.Context())
}

func attach(c *gin.Context, id *Identity) {
	c.Set(identityContextKey, id)
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
}
