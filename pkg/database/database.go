package database

import (
	"fmt"
	"log"

	"calm_learning_hub/internal/config"
	"calm_learning_hub/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "learning_hub.db"
		}
		dialector = sqlite.Open(path)
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.TeacherLearner{},
		&model.ParentChild{},
		&model.Lesson{},
		&model.LessonAssignment{},
		&model.HelpRequest{},
		&model.Encouragement{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Default encouragement phrases for the learner space.
	var count int64
	db.Model(&model.Encouragement{}).Count(&count)
	if count == 0 {
		defaults := []string{
			"One small step at a time is exactly the right speed.",
			"You can always read a step again. There is no hurry.",
			"Every lesson you finish is something to be proud of.",
			"It is okay to ask a grown-up for help whenever you like.",
		}
		for i, content := range defaults {
			db.Create(&model.Encouragement{
				Content:         content,
				IsEnabled:       true,
				IsCurrentlyUsed: i == 0,
			})
		}
	}

	return db, nil
}
