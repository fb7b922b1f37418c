package config

import (
	"log"

	"packbill-backoffice/internal/adapters/persistence/models"
	"packbill-backoffice/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedSystemUser(); err != nil {
		log.Printf("⚠️ System user seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin account.
// This is for development/testing only; in production create the admin
// through a secure process and change the password immediately.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("is_superuser = ?", true).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@packbill.io",
		Password: hashedPassword,
		IsActive: true,
	}
	admin.ApplyUserType(models.UserTypeAdmin)

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedSystemUser seeds the "system" account audit entries fall back to
// when a mutation has no authenticated author.
func (s *Seeder) seedSystemUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("username = ?", "system").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("!") // Not a usable login
	if err != nil {
		return err
	}

	system := &models.User{
		Username: "system",
		Email:    "system@packbill.io",
		Password: hashedPassword,
		IsActive: false,
	}
	system.ApplyUserType(models.UserTypeEmployee)

	if err := s.db.Create(system).Error; err != nil {
		return err
	}

	log.Println("✅ System user created")
	return nil
}
