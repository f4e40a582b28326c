package db

import (
	"fmt"
	"log"
	"os"

	"librarysystem/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	err = Migrate(DB)
	if err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Librarian{}, &models.Book{}, &models.Member{}, &models.Borrowing{}); err != nil {
		return err
	}

	// 同一本书最多一条未归还记录
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_book
	  ON %s (book_id)
	  WHERE return_date IS NULL;
	`, models.BorrowingTable, models.BorrowingTable)).Error; err != nil {
		return err
	}

	// 查询当前借出更快
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_book_borrowdate_desc
	  ON %s (book_id, borrow_date DESC)
	  WHERE return_date IS NULL;
	`, models.BorrowingTable, models.BorrowingTable)).Error; err != nil {
		return err
	}

	return nil
}
