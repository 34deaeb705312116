package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"teatrails/internal/catalog"
	"teatrails/internal/shared/config"
	"teatrails/internal/shared/database"
	"teatrails/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting TeaTrails Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"reviews",
		"payments",
		"booking_experiences",
		"bookings",
		"reservation_slots",
		"reservations",
		"time_slots",
		"experiences",
		"venues",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds users, venues, experiences and schedules
func (s *Seeder) SeedAll() error {
	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.SeedVenues(); err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}
	return nil
}

// SeedUsers creates one account per role for local testing
func (s *Seeder) SeedUsers() error {
	fmt.Println("  Seeding users...")

	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seedUsers := []users.User{
		{FullName: "Super Admin", Email: "admin@teatrails.lk", Password: string(password), Role: users.RoleSuperAdmin},
		{FullName: "Pedro Estate Manager", Email: "manager@pedroestate.lk", Password: string(password), Role: users.RolePlantationAdmin},
		{FullName: "Amara Perera", Email: "amara@example.com", Password: string(password), Role: users.RoleTourist},
		{FullName: "Hans Mueller", Email: "hans@example.com", Password: string(password), Role: users.RoleTourist},
	}

	for i := range seedUsers {
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return err
		}
		fmt.Printf("    Created user: %s (%s)\n", seedUsers[i].Email, seedUsers[i].Role)
	}
	return nil
}

// SeedVenues creates the demo plantations with experiences and schedules
func (s *Seeder) SeedVenues() error {
	fmt.Println("  Seeding venues...")

	morningTimes := []string{"09:00", "11:00"}
	afternoonTimes := []string{"14:00", "16:00"}

	venues := []catalog.Venue{
		{
			Name:         "Pedro Tea Estate",
			Address:      "Nuwara Eliya, Central Province",
			Description:  "A working high-grown tea estate on the slopes above Nuwara Eliya, producing some of the island's finest orange pekoe since 1885.",
			BestTime:     "Early morning, when the factory is in full production",
			ContactPhone: "+94 52 222 3456",
			ContactEmail: "visits@pedroestate.lk",
			Experiences: []catalog.Experience{
				{
					Name:               "Tea Factory Tour",
					Category:           "Factory Tour",
					AdultPriceUSDCents: 1000,
					ChildPriceUSDCents: 500,
					AdultPriceLKRCents: 150000,
					ChildPriceLKRCents: 75000,
					TimeSlots:          buildSlots([]string{"2026-01-15", "2026-01-16", "2026-01-17"}, append(morningTimes, afternoonTimes...), 20),
				},
				{
					Name:               "Tea Tasting Session",
					Category:           "Tasting",
					AdultPriceUSDCents: 1500,
					ChildPriceUSDCents: 750,
					AdultPriceLKRCents: 225000,
					ChildPriceLKRCents: 112500,
					TimeSlots:          buildSlots([]string{"2026-01-15", "2026-01-16", "2026-01-17"}, afternoonTimes, 8),
				},
				{
					Name:               "Tea Plucking Experience",
					Category:           "Field Experience",
					AdultPriceUSDCents: 2000,
					ChildPriceUSDCents: 1000,
					TimeSlots:          buildSlots([]string{"2026-01-15", "2026-01-16"}, morningTimes, 12),
				},
			},
		},
		{
			Name:         "Bluefield Tea Garden",
			Address:      "Ramboda, Nuwara Eliya Road",
			Description:  "Family-run garden on the Ramboda pass with a century-old rolling room and sweeping valley views from the tasting terrace.",
			BestTime:     "Late afternoon for the valley light",
			ContactPhone: "+94 52 225 9876",
			ContactEmail: "hello@bluefieldtea.lk",
			Experiences: []catalog.Experience{
				{
					Name:               "Garden Walk & Factory Tour",
					Category:           "Factory Tour",
					AdultPriceUSDCents: 800,
					ChildPriceUSDCents: 400,
					TimeSlots:          buildSlots([]string{"2026-01-15", "2026-01-16", "2026-01-17"}, append(morningTimes, afternoonTimes...), 25),
				},
				{
					Name:               "High Tea on the Terrace",
					Category:           "Tasting",
					AdultPriceUSDCents: 2500,
					ChildPriceUSDCents: 1250,
					TimeSlots:          buildSlots([]string{"2026-01-15", "2026-01-16", "2026-01-17"}, []string{"16:00"}, 10),
				},
			},
		},
	}

	for i := range venues {
		if err := s.db.PostgreSQL.Create(&venues[i]).Error; err != nil {
			return err
		}
		fmt.Printf("    Created venue: %s (%d experiences)\n", venues[i].Name, len(venues[i].Experiences))
	}
	return nil
}

func buildSlots(dates, times []string, capacity int) []catalog.TimeSlot {
	var slots []catalog.TimeSlot
	for _, date := range dates {
		for _, timeOfDay := range times {
			slots = append(slots, catalog.TimeSlot{
				Date:     date,
				Time:     timeOfDay,
				Capacity: capacity,
			})
		}
	}
	return slots
}
