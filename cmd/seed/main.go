package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/igabay/booking-api/internal/config"
	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/repository/postgres"
)

// Development seeder: fills the database with fake clinics and patients so
// the calendar and booking endpoints have something to serve.
func main() {
	clinics := flag.Int("clinics", 5, "number of clinics to create")
	patients := flag.Int("patients", 20, "number of patients to create")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	clinicRepo := postgres.NewClinicRepository(db)
	patientRepo := postgres.NewPatientRepository(db)

	weekdayHours := model.DayHours{Open: "09:00", Close: "17:00"}
	hours := model.OperatingHours{
		"monday":    weekdayHours,
		"tuesday":   weekdayHours,
		"wednesday": weekdayHours,
		"thursday":  weekdayHours,
		"friday":    weekdayHours,
		"saturday":  {Open: "09:00", Close: "12:00"},
	}

	for i := 0; i < *clinics; i++ {
		lat := gofakeit.Latitude()
		lng := gofakeit.Longitude()
		clinic := &model.Clinic{
			Name:            fmt.Sprintf("%s Clinic", gofakeit.LastName()),
			Address:         gofakeit.Address().Address,
			Phone:           gofakeit.Phone(),
			Email:           gofakeit.Email(),
			Status:          model.ClinicStatusActive,
			OperatingHours:  hours,
			ConsultationFee: cfg.Booking.ConsultationFee,
			Latitude:        &lat,
			Longitude:       &lng,
		}
		if err := clinicRepo.Create(ctx, clinic); err != nil {
			log.Fatal().Err(err).Msg("failed to seed clinic")
		}
		log.Info().Str("id", clinic.ID.String()).Str("name", clinic.Name).Msg("seeded clinic")
	}

	for i := 0; i < *patients; i++ {
		patient := &model.Patient{
			Name:   gofakeit.Name(),
			Email:  gofakeit.Email(),
			Phone:  gofakeit.Phone(),
			Status: model.PatientStatusActive,
		}
		if err := patientRepo.Create(ctx, patient); err != nil {
			log.Fatal().Err(err).Msg("failed to seed patient")
		}
	}

	log.Info().Int("clinics", *clinics).Int("patients", *patients).Msg("seeding complete")
}
