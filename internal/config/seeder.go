package config

import (
	"log"

	"univ-biblio/internal/adapters/persistence/models"
	"univ-biblio/internal/core/domain"
	"univ-biblio/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedData seeds the default admin account and a starter catalog
func SeedData(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedBooks(db); err != nil {
		return err
	}

	log.Println("✅ Seed data checked")
	return nil
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(getEnv("ADMIN_PASSWORD", "changeme"))
	if err != nil {
		return err
	}

	admin := &models.User{
		FirstName: "Library",
		LastName:  "Admin",
		Email:     getEnv("ADMIN_EMAIL", "admin@biblio.local"),
		Password:  hashed,
		Role:      string(domain.RoleAdmin),
		IsActive:  true,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Default admin created: %s", admin.Email)
	return nil
}

func seedBooks(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Book{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	books := []models.Book{
		{Title: "Le Petit Prince", Author: "Antoine de Saint-Exupéry", Category: "Fiction", Rating: 4.5, Cover: models.DefaultCover, TotalCopies: 3, AvailableCopies: 3},
		{Title: "Clean Code", Author: "Robert C. Martin", Category: "Software", Rating: 4.2, Cover: models.DefaultCover, TotalCopies: 2, AvailableCopies: 2},
		{Title: "Introduction to Algorithms", Author: "Thomas H. Cormen", Category: "Computer Science", Rating: 4.8, Cover: models.DefaultCover, TotalCopies: 4, AvailableCopies: 4},
		{Title: "L'Étranger", Author: "Albert Camus", Category: "Fiction", Rating: 4.0, Cover: models.DefaultCover, TotalCopies: 2, AvailableCopies: 2},
	}

	if err := db.Create(&books).Error; err != nil {
		return err
	}

	log.Printf("✅ Starter catalog seeded (%d books)", len(books))
	return nil
}
