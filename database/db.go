package database

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Drafts and Profiles are the two stores the controllers talk to. Connect
// wires them to Postgres; without a configured database they fall back to
// the in-memory store so a fresh checkout runs with zero setup.
var (
	Drafts   DraftStore
	Profiles ProfileStore
)

func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment as-is")
	}

	if os.Getenv("DB_USER") == "" {
		log.Println("DB_USER not set, using in-memory store")
		mem := NewMemoryStore()
		Drafts = mem
		Profiles = mem
		return
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=5432 sslmode=disable TimeZone=Asia/Seoul",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Println(err)
		panic("Could not connect to database")
	}

	AutoMigrate()

	gs := NewGormStore(DB)
	Drafts = gs
	Profiles = gs
}

func AutoMigrate() {
	DB.AutoMigrate(&DraftRecord{}, &ProfileRecord{})
}
