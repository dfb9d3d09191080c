package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"aiqfome-api/internal/domain"
)

// Migrate 建表 / 索引 / 外键
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Customer{}, &domain.FavoriteProduct{})
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if isDupKey(err) {
		return errors.Join(domain.ErrDuplicate, err)
	}
	return err
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 部分驱动未做 TranslateError，按错误文本兜底
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
