package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
)

// Gate 从请求中解析管理员身份。
type Gate interface {
	Identify(c *gin.Context) (*Identity, error)
}

// SessionGate 基于 gin-contrib/sessions 的 cookie 会话实现 Gate。
type SessionGate struct{}

// NewSessionGate 构造 SessionGate。
func NewSessionGate() *SessionGate {
	return &SessionGate{}
}

// Identify 读取会话中的 user_id/username，缺失时返回 ErrUnauthorized。
func (SessionGate) Identify(c *gin.Context) (*Identity, error) {
	session := sessions.Default(c)

	userID, ok := toUint(session.Get(sessionUserIDKey))
	if !ok {
		return nil, ErrUnauthorized
	}
	username, _ := session.Get(sessionUsernameKey).(string)

	id := &Identity{UserID: userID, Username: username}
	if err := Authorize(id); err != nil {
		return nil, err
	}
	return id, nil
}

// StartSession 在登录成功后写入会话。
func StartSession(c *gin.Context, id Identity) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserIDKey, id.UserID)
	session.Set(sessionUsernameKey, id.Username)
	return session.Save()
}

// EndSession 清空会话。
func EndSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// cookie 会话经 gob 编码后，整型会以原始类型还原；这里兼容常见的几种。
func toUint(v interface{}) (uint, bool) {
	switch n := v.(type) {
	case uint:
		return n, n != 0
	case uint64:
		return uint(n), n != 0
	case uint32:
		return uint(n), n != 0
	case int:
		return uint(n), n > 0
	case int64:
		return uint(n), n > 0
	default:
		return 0, false
	}
}
