// Package auth 提供后台管理的鉴权闸门。
//
// 身份由会话提供方（cookie 会话）确定，闸门只回答“是否存在有效的管理员身份”。
// 所有写操作在访问数据库之前都必须先经过 Authorize。
package auth

import (
	"context"
	"errors"
	"strings"
)

// ErrUnauthorized 表示请求中没有有效的管理员身份。
var ErrUnauthorized = errors.New("unauthorized")

// Identity 是鉴权通过后得到的管理员身份。
type Identity struct {
	UserID   uint
	Username string
}

// Valid 判断身份是否完整可用。
func (i *Identity) Valid() bool {
	return i != nil && i.UserID != 0 && strings.TrimSpace(i.Username) != ""
}

// Authorize 在身份缺失或无效时返回 ErrUnauthorized。
func Authorize(id *Identity) error {
	if !id.Valid() {
		return ErrUnauthorized
	}
	return nil
}

type identityKey struct{}

// WithIdentity 将身份附加到 context 上，供下游显式读取。
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext 读取 context 中的身份；不存在时返回 nil。
func FromContext(ctx context.Context) *Identity {
	if ctx == nil {
		return nil
	}
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
