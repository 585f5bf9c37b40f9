package database

import (
	"fmt"
	"log"

	"amparo-backend/config"
	"amparo-backend/internal/domain/content"
	"amparo-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := config.DB_URL

	// TranslateError turns unique-constraint violations into
	// gorm.ErrDuplicatedKey so handlers can answer 409 instead of 500.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},

		&content.Talk{},
		&content.TalkTranslation{},
		&content.LectureVideo{},
		&content.LectureFile{},

		&content.Exercise{},
		&content.Study{},

		&content.Page{},
		&content.PageTranslation{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
