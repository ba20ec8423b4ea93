package models

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func followDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "follows.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Follow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSelfFollowRejected(t *testing.T) {
	db := followDB(t)
	user := User{Username: "leo"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}

	err := db.Create(&Follow{UserID: user.ID, AuthorID: user.ID}).Error
	if !errors.Is(err, ErrSelfFollow) {
		t.Errorf("self follow error = %v, want ErrSelfFollow", err)
	}

	var count int64
	db.Model(&Follow{}).Count(&count)
	if count != 0 {
		t.Errorf("follow count = %d, want 0", count)
	}
}

func TestFollowPairIsUnique(t *testing.T) {
	db := followDB(t)
	reader := User{Username: "kolyan"}
	author := User{Username: "vovan"}
	if err := db.Create(&reader).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&author).Error; err != nil {
		t.Fatal(err)
	}

	if err := db.Create(&Follow{UserID: reader.ID, AuthorID: author.ID}).Error; err != nil {
		t.Fatalf("first follow: %v", err)
	}
	if err := db.Create(&Follow{UserID: reader.ID, AuthorID: author.ID}).Error; err == nil {
		t.Errorf("duplicate follow pair accepted")
	}

	// The reverse edge is a different pair and stays allowed.
	if err := db.Create(&Follow{UserID: author.ID, AuthorID: reader.ID}).Error; err != nil {
		t.Errorf("reverse follow rejected: %v", err)
	}
}
