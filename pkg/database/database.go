package database

import (
	"fmt"
	"log"

	"studyshare_backend/internal/config"
	"studyshare_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// 版本号与评分的唯一索引冲突需要被识别为 gorm.ErrDuplicatedKey
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Tenant{},
		&model.User{},
		&model.Lecture{},
		&model.Content{},
		&model.Note{},
		&model.FlashCard{},
		&model.FlashCardItem{},
		&model.ProblemSet{},
		&model.ProblemSetVersion{},
		&model.Question{},
		&model.Choice{},
		&model.ExamAttempt{},
		&model.UserAnswer{},
		&model.Rating{},
	)
}
