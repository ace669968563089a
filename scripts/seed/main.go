package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/insighthub/meeting-insights/internal/adapter/repository"
	"github.com/insighthub/meeting-insights/internal/domain/entities"
	"github.com/insighthub/meeting-insights/internal/infrastructure/database"
	"github.com/insighthub/meeting-insights/pkg/config"
	pkgjwt "github.com/insighthub/meeting-insights/pkg/jwt"
)

// Seeds a few pending transcripts for local development and prints a service
// token for exercising the API.
func main() {
	log.Println("🚀 Seeding development transcripts...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	repo := repository.NewTranscriptRepository(db)
	ctx := context.Background()

	samples := []*entities.Transcript{
		buildSample("dev-meeting-1", "Weekly sync", "We reviewed the roadmap and agreed to ship the export feature next sprint.", "alice@example.com"),
		buildSample("dev-meeting-2", "Incident review", "The outage was traced to a misconfigured pool. Bob will write the runbook.", "bob@example.com"),
		buildSample("dev-meeting-3", "Planning", "Budget for Q4 was approved. Carol takes over vendor negotiations.", "carol@example.com"),
	}

	for _, t := range samples {
		if err := repo.Create(ctx, t); err != nil {
			log.Fatalf("Failed to seed transcript %s: %v", t.MeetingID, err)
		}
		log.Printf("✅ Seeded transcript %s (%s)", t.ID, t.Title)
	}

	jwtManager := pkgjwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry)
	token, err := jwtManager.GenerateToken("dev-client")
	if err != nil {
		log.Fatalf("Failed to generate service token: %v", err)
	}

	fmt.Println("\nService token for local API calls:")
	fmt.Println(token)
}

func buildSample(meetingID, title, content, organizer string) *entities.Transcript {
	t := entities.NewTranscript(meetingID, title, content)
	t.Organizer = organizer
	t.Duration = 30 * time.Minute
	t.Participants = []entities.Participant{
		{ID: "u-1", DisplayName: "Alice", Email: "alice@example.com", Role: "organizer"},
		{ID: "u-2", DisplayName: "Bob", Email: "bob@example.com", Role: "attendee"},
	}
	return t
}
