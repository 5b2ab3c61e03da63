package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB 打开连接。TranslateError 开启后唯一键冲突统一映射为 gorm.ErrDuplicatedKey，
// 成员表的 (user, scope) 唯一约束以数据库为准，应用层预检查只是优化
func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	DB = db
	return nil
}
