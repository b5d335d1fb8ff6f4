package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"farmassist/internal/database"
	"farmassist/internal/domain"
	"farmassist/internal/repository"
)

func main() {
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "farmassist.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM manures")
	db.Exec("DELETE FROM tractors")
	db.Exec("DELETE FROM nursery_crops")
	db.Exec("DELETE FROM users")

	users := repository.NewUserRepository(db)
	manures := repository.NewManureRepository(db)
	tractors := repository.NewTractorRepository(db)
	crops := repository.NewNurseryCropRepository(db)
	bookings := repository.NewBookingRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	names := []string{"Ravi Kumar", "Lakshmi Devi", "Suresh Babu", "Anand Reddy"}
	villages := []string{"Kothapalli", "Rampur", "Chinnapuram", "Kothapalli"}
	farmers := make([]*domain.User, 0, len(names))
	for i, name := range names {
		hash, _ := bcrypt.GenerateFromPassword([]byte("farmer123"), bcrypt.DefaultCost)
		u := &domain.User{
			Name:         name,
			Email:        fmt.Sprintf("farmer%d@farmassist.in", i+1),
			Phone:        fmt.Sprintf("+91 98765 432%02d", i+10),
			PasswordHash: string(hash),
			Village:      villages[i],
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("user create failed:", err)
		}
		farmers = append(farmers, u)
	}

	// ================== LISTINGS ==================
	log.Println("Creating manure listings...")
	manureTypes := []string{"Cow Dung", "Vermicompost", "Poultry"}
	var firstManure *domain.Manure
	for i, mt := range manureTypes {
		m := &domain.Manure{
			ManureType:  mt,
			Quantity:    50 + float64(i)*25,
			CostPerKg:   4 + float64(i),
			Address:     fmt.Sprintf("Plot %d, %s", i+1, villages[i]),
			Description: "Well decomposed, ready for field application",
			PostedBy:    farmers[i].ID,
		}
		if err := manures.Create(ctx, m); err != nil {
			log.Fatal("manure create failed:", err)
		}
		if firstManure == nil {
			firstManure = m
		}
	}

	log.Println("Creating tractor listings...")
	brands := []string{"Mahindra", "Swaraj"}
	for i, brand := range brands {
		t := &domain.Tractor{
			OwnerID:            farmers[i].ID,
			Brand:              brand,
			ModelNumber:        fmt.Sprintf("%s-%d75", brand[:2], i+5),
			RegistrationNumber: fmt.Sprintf("AP09TX%04d", 1200+i),
			EngineCapacity:     45 + float64(i)*10,
			FuelType:           domain.FuelDiesel,
			Attachments:        []domain.TractorAttachment{domain.AttachmentPlough, domain.AttachmentRotavator},
			Available:          true,
		}
		if err := tractors.Create(ctx, t); err != nil {
			log.Fatal("tractor create failed:", err)
		}
	}

	log.Println("Creating nursery crop listings...")
	cropNames := []string{"Tomato Seedlings", "Chilli Seedlings", "Marigold Saplings"}
	for i, name := range cropNames {
		c := &domain.NurseryCrop{
			Name:              name,
			Category:          "Vegetable",
			GrowingSeason:     "Kharif",
			Description:       "Healthy nursery stock",
			QuantityAvailable: 200 + float64(i)*100,
			CostPerCrop:       2 + float64(i),
			PostedBy:          farmers[(i+1)%len(farmers)].ID,
		}
		if err := crops.Create(ctx, c); err != nil {
			log.Fatal("nursery crop create failed:", err)
		}
	}

	// ================== BOOKINGS ==================
	log.Println("Creating a pending demo booking...")
	qty := 10.0
	b := &domain.Booking{
		ItemType:          domain.ItemManure,
		ItemID:            firstManure.ID,
		RequesterID:       farmers[3].ID,
		ProviderID:        firstManure.PostedBy,
		RequestedQuantity: &qty,
		Status:            domain.BookingPending,
	}
	if err := bookings.Create(ctx, b); err != nil {
		log.Fatal("booking create failed:", err)
	}

	log.Println("Seed completed!")
	log.Println("Test accounts: farmer1@farmassist.in ... farmer4@farmassist.in / farmer123")
}
