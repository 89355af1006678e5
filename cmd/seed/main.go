// Command seed provisions the demo dataset: an admin user plus a couple
// of regular users with funded accounts and open bills.
package main

import (
	"log"
	"os"
	"time"

	"finch/internal/config"
	"finch/internal/models"
	"finch/internal/repositories"
	"finch/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Failed to close PostgreSQL connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}
	}()

	seedUser(adminEmail, "admin", "Administrator", adminPassword, "admin", 0, nil)

	opening := config.GetFloatEnv("DEMO_OPENING_BALANCE", 10000)
	seedUser("asha@example.com", "asha", "Asha Rao", "Demo@1234", "user", opening, []models.Bill{
		{Biller: "City Power", Category: "electricity", Amount: 1450, DueDate: time.Now().AddDate(0, 0, 7)},
		{Biller: "AquaWorks", Category: "water", Amount: 380, DueDate: time.Now().AddDate(0, 0, 12)},
	})
	seedUser("vikram@example.com", "vikram", "Vikram Shah", "Demo@1234", "user", opening, []models.Bill{
		{Biller: "FiberNet", Category: "broadband", Amount: 999, DueDate: time.Now().AddDate(0, 0, 4)},
	})

	log.Println("Seed completed")
}

func seedUser(email, username, name, password, role string, balance float64, bills []models.Bill) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("User %s already exists, skipping", email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password for %s: %v", email, err)
	}

	user := models.User{
		Email:    email,
		Username: username,
		Name:     name,
		Password: string(hashed),
		Role:     role,
		Status:   "active",
	}
	if err := repositories.DB.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user %s: %v", email, err)
	}

	number, err := utils.GenerateAccountNumber()
	if err != nil {
		log.Fatalf("Failed to generate account number: %v", err)
	}
	account := models.Account{
		UserID:        user.ID,
		AccountNumber: number,
		Currency:      config.GetEnv("ACCOUNT_CURRENCY", "INR"),
	}
	if err := repositories.DB.Create(&account).Error; err != nil {
		log.Fatalf("Failed to create account for %s: %v", email, err)
	}
	if balance > 0 {
		account.Balance = balance
		if err := repositories.DB.Save(&account).Error; err != nil {
			log.Fatalf("Failed to fund account for %s: %v", email, err)
		}
	}

	user.AccountID = &account.ID
	if err := repositories.DB.Save(&user).Error; err != nil {
		log.Fatalf("Failed to link account for %s: %v", email, err)
	}

	for i := range bills {
		bills[i].UserID = user.ID
		bills[i].Status = models.BillStatusDue
	}
	if len(bills) > 0 {
		if err := repositories.DB.Create(&bills).Error; err != nil {
			log.Fatalf("Failed to create bills for %s: %v", email, err)
		}
	}

	log.Printf("Seeded %s (%s) with account %s", email, role, number)
}
