package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义后台管理员账号。
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"unique;not null"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EnsureUser 存在性检查：若提供的用户名与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的用户。
// 返回值 created 表示本次是否新建了账号。
func EnsureUser(gdb *gorm.DB, username, password string) (bool, error) {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return false, nil
	}

	if gdb == nil {
		return false, errors.New("database not initialized")
	}

	var existing User
	if err := gdb.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}

		if err := gdb.Create(&User{Username: trimmedUser, Password: string(hashed)}).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// SetPassword 重置指定账号的密码。
func SetPassword(gdb *gorm.DB, username, password string) error {
	trimmedPassword := strings.TrimSpace(password)
	if trimmedPassword == "" {
		return errors.New("password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	result := gdb.Model(&User{}).Where("username = ?", strings.TrimSpace(username)).Update("password", string(hashed))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
