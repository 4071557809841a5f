package database

import (
	"fmt"
	"log"

	"school_exam_backend/internal/config"
	"school_exam_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
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
		// unique-constraint violations must surface as
		// gorm.ErrDuplicatedKey; the exam service relies on it
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.Competency{},
		&model.Question{},
		&model.AnswerOption{},
		&model.AnswerKey{},
		&model.TestAttempt{},
		&model.Result{},
		&model.ResultAnswer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// bootstrap admin account on an empty install
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count)
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin := &model.User{
			Name:     "Administrator",
			Username: "admin",
			Password: string(hash),
			Role:     model.Admin,
		}
		if err := db.Create(admin).Error; err != nil {
			return nil, err
		}
		log.Println("Seeded default admin account (username: admin)")
	}

	return db, nil
}
