package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_models "go-events/internal/common/models"
	"go-events/internal/config"
	"go-events/internal/database"
	"go-events/internal/features/record"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Fatal(err)
	}
	return t
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	mongoDB := &database.MongodbDB{DB: client.Database(cfg.DBName)}
	repo := record.NewRecordRepository(mongoDB)

	scope := common_models.Scope{
		TenantID: "dev-tenant",
		EventID:  "dev-event",
		UserID:   "dev-user",
	}

	fmt.Println("🌱 Seeding demo event data...")

	participants := []map[string]any{
		{
			"firstName": "Maria", "lastName": "Gonzalez",
			"participantType": "youth", "diocese": "Austin", "parish": "St. Mary",
			"age": 16, "gender": "female",
			"liabilityForm": map[string]any{"submitted": true, "allergies": "peanuts", "medications": ""},
			"checkIn":       map[string]any{"checkedIn": true, "checkedInAt": day("2026-07-10")},
			"registeredAt":  day("2026-05-02"),
		},
		{
			"firstName": "James", "lastName": "O'Brien",
			"participantType": "chaperone", "diocese": "Dallas", "parish": "Holy Trinity",
			"age": 42, "gender": "male",
			"liabilityForm": map[string]any{"submitted": true, "allergies": "", "medications": ""},
			"checkIn":       map[string]any{"checkedIn": false},
			"registeredAt":  day("2026-04-18"),
		},
		{
			"firstName": "Aisha", "lastName": "Kelly",
			"participantType": "youth", "diocese": "Austin", "parish": "Sacred Heart",
			"age": 15, "gender": "female",
			"liabilityForm": map[string]any{"submitted": false, "allergies": "", "medications": "inhaler"},
			"checkIn":       map[string]any{"checkedIn": true, "checkedInAt": day("2026-07-10")},
			"registeredAt":  day("2026-05-21"),
		},
		{
			"firstName": "Daniel", "lastName": "Nguyen",
			"participantType": "clergy", "diocese": "Houston", "parish": "St. Joseph",
			"age": 55, "gender": "male",
			"liabilityForm": map[string]any{"submitted": true, "allergies": "shellfish", "medications": ""},
			"checkIn":       map[string]any{"checkedIn": true, "checkedInAt": day("2026-07-09")},
			"registeredAt":  day("2026-03-30"),
		},
		{
			"firstName": "Emma", "lastName": "Schmidt",
			"participantType": "volunteer", "diocese": "Dallas", "parish": "Holy Trinity",
			"age": 28, "gender": "female",
			"liabilityForm": map[string]any{"submitted": true, "allergies": "", "medications": ""},
			"checkIn":       map[string]any{"checkedIn": false},
			"registeredAt":  day("2026-06-11"),
		},
	}

	incidents := []map[string]any{
		{
			"incidentType": "medical", "severity": "minor", "status": "resolved",
			"description":     "Scraped knee during morning session",
			"reportedBy":      "Emma Schmidt",
			"involvedPerson":  "Maria Gonzalez",
			"medicationGiven": false,
			"location":        "Main field",
			"occurredAt":      day("2026-07-10"),
		},
		{
			"incidentType": "medical", "severity": "moderate", "status": "open",
			"description":     "Asthma episode, inhaler administered",
			"reportedBy":      "James O'Brien",
			"involvedPerson":  "Aisha Kelly",
			"medicationGiven": true,
			"location":        "Dormitory B",
			"occurredAt":      day("2026-07-11"),
		},
		{
			"incidentType": "behavioral", "severity": "minor", "status": "closed",
			"description":     "Curfew violation",
			"reportedBy":      "Daniel Nguyen",
			"involvedPerson":  "",
			"medicationGiven": false,
			"location":        "Dormitory A",
			"occurredAt":      day("2026-07-11"),
		},
	}

	financial := []map[string]any{
		{
			"invoiceNumber": "INV-1001",
			"payer":         map[string]any{"name": "St. Mary Parish", "email": "office@stmary.org", "diocese": "Austin"},
			"amountDue":     450.0, "amountPaid": 450.0,
			"status": "paid", "method": "card",
			"paidAt": day("2026-06-01"),
		},
		{
			"invoiceNumber": "INV-1002",
			"payer":         map[string]any{"name": "Holy Trinity Parish", "email": "admin@holytrinity.org", "diocese": "Dallas"},
			"amountDue":     600.0, "amountPaid": 200.0,
			"status": "partial", "method": "check",
			"paidAt": day("2026-06-15"),
		},
		{
			"invoiceNumber": "INV-1003",
			"payer":         map[string]any{"name": "St. Joseph Parish", "email": "office@stjoseph.org", "diocese": "Houston"},
			"amountDue":     300.0, "amountPaid": 0.0,
			"status": "unpaid", "method": "",
		},
	}

	seed := func(sourceKey, keyField string, docs []map[string]any) {
		for _, doc := range docs {
			if err := repo.UpsertByKey(ctx, scope, sourceKey, keyField, doc); err != nil {
				log.Printf("Failed to seed %s row: %v", sourceKey, err)
				continue
			}
		}
		fmt.Printf("Seeded %d %s rows\n", len(docs), sourceKey)
	}

	seed("participants", "lastName", participants)
	seed("incidents", "description", incidents)
	seed("financial", "invoiceNumber", financial)

	fmt.Println("✅ Done")
}
