package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main seeds demo CRM data: agents, leads, opportunities and commissions.
// Usage: go run cmd/seed/main.go
// This is a standalone CLI tool, not part of the main application
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("VANTAGE CRM - Demo Data Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	defer config.CloseDB()
	log.Println("✓ Connected to databases")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	agentIDs := seedAgents(ctx)
	log.Printf("✓ Seeded %d agents", len(agentIDs))

	leadIDs := seedLeads(ctx, agentIDs)
	log.Printf("✓ Seeded %d leads", len(leadIDs))

	oppIDs := seedOpportunities(ctx, leadIDs, agentIDs)
	log.Printf("✓ Seeded %d opportunities", len(oppIDs))

	productCount := seedCatalog(ctx)
	log.Printf("✓ Seeded %d products", productCount)

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Demo Data Seeded Successfully!")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the server: go run main.go")
	fmt.Println("2. Browse leads at GET /api/v1/crm/leads")
	fmt.Println("3. Browse the pipeline at GET /api/v1/crm/opportunities")
	fmt.Println()
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func seedAgents(ctx context.Context) []string {
	agents := []struct {
		name, email, region string
		rate                float64
	}{
		{"Amara Osei", "amara.osei@vantage-crm.io", "EMEA", 0.05},
		{"Lucas Ferreira", "lucas.ferreira@vantage-crm.io", "LATAM", 0.04},
		{"Mei Tanaka", "mei.tanaka@vantage-crm.io", "APAC", 0.06},
	}

	ids := make([]string, 0, len(agents))
	for _, a := range agents {
		id := newID()
		_, err := config.CrmDB.Exec(ctx, `
			INSERT INTO agents (id, name, email, region, commission_rate, status, joined_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 'active', NOW() - interval '1 year', NOW(), NOW())
			ON CONFLICT (email) DO NOTHING
		`, id, a.name, a.email, a.region, a.rate)
		if err != nil {
			log.Fatalf("❌ Failed to seed agent %s: %v", a.email, err)
		}
		ids = append(ids, id)
	}
	return ids
}

func seedLeads(ctx context.Context, agentIDs []string) []string {
	// Older rows carry product_interests as a double-encoded JSON string,
	// which is what the merge path in production has to cope with.
	embedded := []models.LeadProductInterest{
		{ProductID: newID(), ProductName: "Standing Desk", Quantity: 2, InterestLevel: "high"},
		{ProductID: newID(), ProductName: "Monitor Arm", Quantity: 4, InterestLevel: "medium"},
	}
	embeddedJSON, _ := json.Marshal(embedded)
	doubleEncoded, _ := json.Marshal(string(embeddedJSON))

	leads := []struct {
		name, email, company, status, source string
		interactions                         int
		interests                            *string
	}{
		{"Nadia Haddad", "nadia@brightworks.example", "Brightworks Ltd", models.LeadStatusNew, "website", 1, strPtr(string(embeddedJSON))},
		{"Tom Becker", "tom@beckerco.example", "Becker & Co", models.LeadStatusContacted, "referral", 4, strPtr(string(doubleEncoded))},
		{"Priya Nair", "priya@orbitlabs.example", "Orbit Labs", models.LeadStatusQualified, "cold_call", 7, nil},
		{"Diego Ramos", "diego@ramosgroup.example", "Ramos Group", models.LeadStatusConverted, "import", 12, nil},
	}

	ids := make([]string, 0, len(leads))
	for i, l := range leads {
		id := newID()
		assignedTo := agentIDs[i%len(agentIDs)]
		_, err := config.CrmDB.Exec(ctx, `
			INSERT INTO leads (id, name, email, company, status, source, assigned_to, product_interests, interactions, created_at, updated_at, converted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, NOW() - ($10::int || ' days')::interval, NOW(),
			        CASE WHEN $5 = 'CONVERTED_TO_OPPORTUNITY' THEN NOW() - interval '2 days' END)
			ON CONFLICT (email) DO NOTHING
		`, id, l.name, l.email, l.company, l.status, l.source, assignedTo, l.interests, l.interactions, (i+1)*7)
		if err != nil {
			log.Fatalf("❌ Failed to seed lead %s: %v", l.email, err)
		}
		ids = append(ids, id)
	}

	// A few interests added after creation, living in the join table.
	later := []struct {
		lead, name string
		qty        int
		level      string
	}{
		{ids[0], "Standing Desk", 5, "high"},
		{ids[0], "Cable Tray", 1, "low"},
		{ids[2], "Conference Cam", 2, "medium"},
	}
	for _, p := range later {
		_, err := config.CrmDB.Exec(ctx, `
			INSERT INTO lead_products (id, lead_id, product_id, product_name, quantity, interest_level, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		`, newID(), p.lead, newID(), p.name, p.qty, p.level)
		if err != nil {
			log.Fatalf("❌ Failed to seed lead product %s: %v", p.name, err)
		}
	}

	activities := []struct {
		lead, kind, subject string
	}{
		{ids[1], models.ActivityKindEmail, "Intro and pricing sheet"},
		{ids[1], models.ActivityKindTask, "Follow up next Tuesday"},
		{ids[2], models.ActivityKindMeeting, "Discovery call"},
	}
	for _, a := range activities {
		_, err := config.CrmDB.Exec(ctx, `
			INSERT INTO lead_activities (id, lead_id, kind, subject, created_by, created_at)
			VALUES ($1, $2, $3, $4, 'seed@vantage-crm.io', NOW() - interval '3 hours')
		`, newID(), a.lead, a.kind, a.subject)
		if err != nil {
			log.Fatalf("❌ Failed to seed lead activity: %v", err)
		}
	}

	return ids
}

func seedOpportunities(ctx context.Context, leadIDs, agentIDs []string) []string {
	opps := []struct {
		name, company, stage, currency string
		value                          float64
		probability                    int
	}{
		{"Brightworks office refit", "Brightworks Ltd", models.StageQualification, "USD", 18000, 20},
		{"Orbit Labs expansion", "Orbit Labs", models.StageProposal, "EUR", 42000, 45},
		{"Ramos Group rollout", "Ramos Group", models.StageWon, "USD", 65000, 100},
		{"Becker retrofit", "Becker & Co", models.StageLost, "GBP", 9000, 0},
	}

	ids := make([]string, 0, len(opps))
	for i, o := range opps {
		id := newID()
		ownerID := agentIDs[i%len(agentIDs)]
		leadID := leadIDs[i%len(leadIDs)]
		_, err := config.CrmDB.Exec(ctx, `
			INSERT INTO opportunities (id, lead_id, name, company_name, stage, value, currency, probability, owner_id, close_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			        CASE WHEN $5 IN ('WON', 'LOST') THEN NOW() - interval '5 days' END,
			        NOW() - interval '30 days', NOW())
		`, id, leadID, o.name, o.company, o.stage, o.value, o.currency, o.probability, ownerID)
		if err != nil {
			log.Fatalf("❌ Failed to seed opportunity %s: %v", o.name, err)
		}
		ids = append(ids, id)

		if o.stage == models.StageWon {
			_, err := config.CrmDB.Exec(ctx, `
				INSERT INTO agent_commissions (id, agent_id, opportunity_id, amount, currency, status, created_at)
				SELECT $1, a.id, $2, $3 * a.commission_rate, $4, 'pending', NOW()
				FROM agents a WHERE a.id = $5
				ON CONFLICT (opportunity_id) DO NOTHING
			`, newID(), id, o.value, o.currency, ownerID)
			if err != nil {
				log.Fatalf("❌ Failed to seed commission: %v", err)
			}
		}
	}
	return ids
}

func seedCatalog(ctx context.Context) int {
	categories := map[string]string{}
	for _, name := range []string{"Desks", "Seating", "Accessories"} {
		id := newID()
		_, err := config.EcommerceDB.Exec(ctx, `
			INSERT INTO categories (id, name, created_at, updated_at)
			VALUES ($1, $2, NOW(), NOW())
			ON CONFLICT (name) DO NOTHING
		`, id, name)
		if err != nil {
			log.Fatalf("❌ Failed to seed category %s: %v", name, err)
		}
		categories[name] = id
	}

	products := []struct {
		name, description, category string
		price                       float64
		quantity, reorderLevel      int
	}{
		{"Standing Desk", "Motorized sit-stand desk, 140x70cm", "Desks", 499.00, 24, 10},
		{"Monitor Arm", "Single-arm gas-spring mount", "Accessories", 79.00, 3, 8},
		{"Conference Cam", "4K wide-angle conference camera", "Accessories", 349.00, 0, 5},
		{"Task Chair", "Mesh-back ergonomic chair", "Seating", 259.00, 41, 15},
		{"Cable Tray", "Under-desk cable management tray", "Accessories", 24.00, 120, 30},
	}
	for _, p := range products {
		_, err := config.EcommerceDB.Exec(ctx, `
			INSERT INTO products (id, name, description, price, category_id, quantity, reorder_level, status, views, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 'Active', 0, NOW(), NOW())
			ON CONFLICT (name) DO NOTHING
		`, newID(), p.name, p.description, p.price, categories[p.category], p.quantity, p.reorderLevel)
		if err != nil {
			log.Fatalf("❌ Failed to seed product %s: %v", p.name, err)
		}
	}
	return len(products)
}

func strPtr(s string) *string { return &s }
