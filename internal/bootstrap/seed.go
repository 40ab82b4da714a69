package bootstrap

import (
	"log"

	"anoa.com/askhub/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.Question{},
		&model.Answer{},
		&model.Vote{},
		&model.Reward{},
		&model.RewardRedemption{},
		&model.Notification{},
	)
}

func SeedCategories(db *gorm.DB) error {
	defaultCategories := []model.Category{
		{Name: "General", Slug: "general", Description: "General questions and discussions", Icon: "HelpCircle", Color: "#6b7280"},
		{Name: "Software", Slug: "software", Description: "Software development and programming questions", Icon: "Code", Color: "#3b82f6"},
		{Name: "Hardware", Slug: "hardware", Description: "Hardware configuration and troubleshooting", Icon: "Server", Color: "#10b981"},
		{Name: "HR", Slug: "hr", Description: "Human resources and workplace questions", Icon: "Users", Color: "#8b5cf6"},
		{Name: "Networking", Slug: "networking", Description: "Access points, routing and network troubleshooting", Icon: "Wifi", Color: "#ef4444"},
		{Name: "Cloud", Slug: "cloud", Description: "Cloud services and infrastructure", Icon: "Cloud", Color: "#06b6d4"},
		{Name: "QA", Slug: "qa", Description: "Quality assurance and testing", Icon: "CheckCircle", Color: "#84cc16"},
	}

	for _, category := range defaultCategories {
		var count int64
		if err := db.Model(&model.Category{}).
			Where("slug = ?", category.Slug).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&category).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedRewards(db *gorm.DB) error {
	defaultRewards := []model.Reward{
		{Name: "Coffee Voucher", Description: "Free coffee from the office café", Points: 50, Category: "Food & Drink", Icon: "Coffee", Available: 15, IsActive: true},
		{Name: "Amazon Gift Card ($25)", Description: "$25 Amazon gift card", Points: 250, Category: "Gift Cards", Icon: "ShoppingCart", Available: 8, IsActive: true},
		{Name: "Team Lunch Sponsorship", Description: "Sponsor lunch for your team (up to 8 people)", Points: 500, Category: "Team Events", Icon: "Gift", Available: 2, IsActive: true},
		{Name: "Premium Parking Spot", Description: "Reserved parking spot for one month", Points: 300, Category: "Perks", Icon: "Star", Available: 4, IsActive: true},
		{Name: "Learning Budget ($100)", Description: "Additional learning and development budget", Points: 400, Category: "Professional Development", Icon: "Award", Available: 6, IsActive: true},
		{Name: "Company Swag Package", Description: "Exclusive company merchandise bundle", Points: 150, Category: "Merchandise", Icon: "Gift", Available: 12, IsActive: true},
	}

	for _, reward := range defaultRewards {
		var count int64
		if err := db.Model(&model.Reward{}).
			Where("name = ?", reward.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&reward).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@askhub.local").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Name:         "Admin User",
		Email:        "admin@askhub.local",
		PasswordHash: string(hashedPasswordBytes),
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Println("   Email: admin@askhub.local")
	log.Println("   Password: admin123")

	return nil
}
