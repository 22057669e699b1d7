package main

import (
	"context"
	"fmt"
	"log"

	"tenniscourt/internal/config"
	"tenniscourt/internal/database"
	"tenniscourt/internal/domain"
	"tenniscourt/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{Quiet: true})
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (children first to keep foreign keys happy)
	log.Println("Cleaning old data...")
	for _, table := range []string{
		"training_equipment", "training_members", "trainings", "reservations",
		"equipment", "trainers", "courts", "persons", "facility_config",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("cleanup %s: %v", table, err)
		}
	}

	ctx := context.Background()
	store := repository.NewStore(db)

	// ================== FACILITY ==================
	if err := store.SaveFacility(ctx, cfg.Facility); err != nil {
		log.Fatal("save facility:", err)
	}
	log.Printf("Facility stored: %s-%s, %d seasons", cfg.Facility.OpenTime, cfg.Facility.CloseTime, len(cfg.Facility.Seasons))

	// ================== PEOPLE ==================
	log.Println("Creating people...")
	clients := make([]*domain.Person, 0, 3)
	for i, name := range []string{"Aigerim Sadykova", "Bauyrzhan Omarov", "Dana Li"} {
		p, err := domain.NewClient(0, name)
		if err != nil {
			log.Fatal(err)
		}
		p.Email = fmt.Sprintf("client%d@tennis.local", i+1)
		p.Phone = fmt.Sprintf("+7 701 555 01%02d", i+1)
		mustCreatePerson(ctx, store, p)
		clients = append(clients, p)
	}

	// The first client plays too.
	player, err := domain.NewClientParticipant(0, "Marat Akhmetov")
	if err != nil {
		log.Fatal(err)
	}
	mustCreatePerson(ctx, store, player)

	for i, owner := range clients {
		for j := 1; j <= 2; j++ {
			kid, err := domain.NewParticipant(0, fmt.Sprintf("Junior %d-%d", i+1, j), owner)
			if err != nil {
				log.Fatal(err)
			}
			mustCreatePerson(ctx, store, kid)
		}
	}

	// ================== COURTS ==================
	log.Println("Creating courts...")
	courts := []domain.Court{
		{Number: 1, Surface: domain.SurfaceHard, Kind: domain.CourtRoofed},
		{Number: 2, Surface: domain.SurfaceCarpet, Kind: domain.CourtRoofed},
		{Number: 3, Surface: domain.SurfaceClay, Kind: domain.CourtUnroofed},
		{Number: 4, Surface: domain.SurfaceClay, Kind: domain.CourtUnroofed},
		{Number: 5, Surface: domain.SurfaceGrass, Kind: domain.CourtUnroofed},
	}
	for i := range courts {
		if err := store.CreateCourt(ctx, &courts[i]); err != nil {
			log.Fatal("create court:", err)
		}
	}

	// ================== TRAINERS ==================
	log.Println("Creating trainers...")
	weekdays := make([]domain.WorkingHours, 0, 7)
	for d := 0; d < 7; d++ {
		weekdays = append(weekdays, domain.WorkingHours{DayOfWeek: d, OpenTime: "09:00", CloseTime: "18:00", IsClosed: d == 0})
	}
	evenings := make([]domain.WorkingHours, 0, 7)
	for d := 0; d < 7; d++ {
		evenings = append(evenings, domain.WorkingHours{DayOfWeek: d, OpenTime: "15:00", CloseTime: "22:00", IsClosed: d == 1})
	}
	trainers := []domain.Trainer{
		{Name: "Yelena Rybakina", Email: "yelena@tennis.local", Tier: domain.TierMaster, WorkingHours: weekdays},
		{Name: "Timur Khabibulin", Email: "timur@tennis.local", Tier: domain.TierSenior, WorkingHours: evenings},
		{Name: "Alina Kim", Tier: domain.TierJunior, WorkingHours: weekdays},
	}
	for i := range trainers {
		if err := store.CreateTrainer(ctx, &trainers[i]); err != nil {
			log.Fatal("create trainer:", err)
		}
	}

	// ================== EQUIPMENT ==================
	log.Println("Creating equipment...")
	equipment := []domain.Equipment{
		{Name: "Pure Drive", Kind: domain.EquipmentRacket, Brand: "Babolat"},
		{Name: "Blade 98", Kind: domain.EquipmentRacket, Brand: "Wilson"},
		{Name: "Ezone 100", Kind: domain.EquipmentRacket, Brand: "Yonex"},
		{Name: "Ball machine", Kind: domain.EquipmentTraining, Brand: "Lobster"},
		{Name: "Cone set", Kind: domain.EquipmentTraining},
	}
	for i := range equipment {
		if err := store.CreateEquipment(ctx, &equipment[i]); err != nil {
			log.Fatal("create equipment:", err)
		}
	}

	log.Println("================================")
	log.Println("Seed completed!")
	log.Printf("People: %d clients, 1 client+participant, %d juniors", len(clients), len(clients)*2)
	log.Printf("Courts: %d, trainers: %d, equipment: %d", len(courts), len(trainers), len(equipment))
	log.Println("================================")
}

func mustCreatePerson(ctx context.Context, store *repository.Store, p *domain.Person) {
	if err := store.CreatePerson(ctx, p); err != nil {
		log.Fatalf("create person %q: %v", p.Name, err)
	}
}
