// Command seed loads development fixtures from fixtures.yaml into the
// database: users, candidate profiles, job offers, plus one worked
// application with its documents, an evaluation and notifications.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// ── fixture shapes ───────────────────────────────────────────────────────────

type fixtures struct {
	Users  []userFixture  `yaml:"users"`
	Offers []offerFixture `yaml:"offers"`
}

type userFixture struct {
	Key              string          `yaml:"key"`
	EmailLocal       string          `yaml:"email_local"`
	Role             string          `yaml:"role"`
	Status           string          `yaml:"status"`
	FirstName        string          `yaml:"first_name"`
	LastName         string          `yaml:"last_name"`
	Sexe             string          `yaml:"sexe"`
	CandidateStatus  *string         `yaml:"candidate_status"`
	NoCorporateEmail bool            `yaml:"no_corporate_email"`
	AccessRequest    bool            `yaml:"access_request"`
	Profile          *profileFixture `yaml:"profile"`
}

type profileFixture struct {
	Skills          []string `yaml:"skills"`
	YearsExperience int      `yaml:"years_experience"`
}

type offerFixture struct {
	Key            string              `yaml:"key"`
	Recruiter      string              `yaml:"recruiter"`
	Title          string              `yaml:"title"`
	Description    string              `yaml:"description"`
	Location       string              `yaml:"location"`
	Department     string              `yaml:"department"`
	ContractType   string              `yaml:"contract_type"`
	SalaryMin      *int64              `yaml:"salary_min"`
	SalaryMax      *int64              `yaml:"salary_max"`
	Visibility     string              `yaml:"visibility"`
	State          string              `yaml:"state"`
	CreatedDaysAgo int                 `yaml:"created_days_ago"`
	MTP            map[string][]string `yaml:"mtp"`
}

// ── helpers ──────────────────────────────────────────────────────────────────

func newID() string { return uuid.New().String() }

func hashPassword(pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), 12)
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func daysAgo(d int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -d)
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	must(err, "marshal")
	return b
}

// ── main ─────────────────────────────────────────────────────────────────────

func main() {
	_ = godotenv.Load()

	var fx fixtures
	must(yaml.Unmarshal(fixturesYAML, &fx), "parse fixtures.yaml")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "recruiting"),
		envOr("DB_PASSWORD", "recruiting"),
		envOr("DB_NAME", "recruiting"),
		envOr("DB_SSL_MODE", "disable"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}
	fmt.Println("connected to database")

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin tx: %v", err)
	}
	defer tx.Rollback(ctx)

	// ── clean up previous seed data ──────────────────────────────────────
	const seedDomain = "@seed.recruiting.dev"
	_, _ = tx.Exec(ctx, `DELETE FROM users WHERE email LIKE '%' || $1`, seedDomain)
	fmt.Println("cleaned previous seed data")

	now := time.Now().UTC()

	// ── 1. users, profiles, access requests ─────────────────────────────
	userIDs := make(map[string]string, len(fx.Users))
	for _, u := range fx.Users {
		id := newID()
		userIDs[u.Key] = id
		must(insertUser(ctx, tx, id, u.EmailLocal+seedDomain, u), "insert user "+u.Key)

		if u.Profile != nil {
			_, err = tx.Exec(ctx, `
				INSERT INTO candidate_profiles (user_id, skills, years_experience, expected_salary_min, expected_salary_max, salary_currency, education, availability)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				id, u.Profile.Skills, u.Profile.YearsExperience, 800000, 1500000, "XAF", "Master's degree", "immediate",
			)
			must(err, "insert candidate profile "+u.Key)
		}

		if u.AccessRequest {
			_, err = tx.Exec(ctx, `
				INSERT INTO access_requests (id, user_id, status, created_at)
				VALUES ($1, $2, 'pending', $3)`,
				newID(), id, now,
			)
			must(err, "insert access request "+u.Key)
		}
	}
	fmt.Printf("seeded %d users\n", len(fx.Users))

	// ── 2. job offers ───────────────────────────────────────────────────
	offerIDs := make(map[string]string, len(fx.Offers))
	for _, o := range fx.Offers {
		recruiterID, ok := userIDs[o.Recruiter]
		if !ok {
			log.Fatalf("offer %s references unknown recruiter %q", o.Key, o.Recruiter)
		}
		id := newID()
		offerIDs[o.Key] = id
		_, err = tx.Exec(ctx, `
			INSERT INTO job_offers (id, recruiter_id, title, description, location, department, contract_type, salary_min, salary_max, currency, visibility, mtp, state, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)`,
			id, recruiterID, o.Title, o.Description, o.Location, o.Department,
			o.ContractType, o.SalaryMin, o.SalaryMax, "XAF", o.Visibility,
			mustMarshal(o.MTP), o.State, daysAgo(o.CreatedDaysAgo),
		)
		must(err, "insert offer "+o.Key)
	}
	fmt.Printf("seeded %d job offers\n", len(fx.Offers))

	// ── 3. an application against the open offer ────────────────────────
	candidateID := userIDs["candidate_internal"]
	offerID := offerIDs["backend_open"]
	answers := mustMarshal(map[string][]string{
		"metier":    {"Five years building Go services at scale.", "Always behind a golang-migrate-tracked schema."},
		"talent":    {"Paired weekly with a junior engineer for three months."},
		"paradigme": {"Shipping something correct beats shipping something fast."},
	})
	managementExperience := true
	applicationID := newID()
	_, err = tx.Exec(ctx, `
		INSERT INTO applications (id, candidate_id, offer_id, status, answers, management_experience, created_at, updated_at)
		VALUES ($1, $2, $3, 'under_review', $4, $5, $6, $6)`,
		applicationID, candidateID, offerID, answers, managementExperience, daysAgo(5),
	)
	must(err, "insert application")

	pdfStub := append([]byte("%PDF-1.4\n"), []byte("seed document placeholder")...)
	for _, d := range []struct {
		docType, fileName string
	}{
		{"cv", "sophie_nguema_cv.pdf"},
		{"cover_letter", "sophie_nguema_cover_letter.pdf"},
		{"diploma", "sophie_nguema_diploma.pdf"},
	} {
		_, err = tx.Exec(ctx, `
			INSERT INTO application_documents (id, application_id, document_type, file_name, mime_type, size_bytes, content, uploaded_at)
			VALUES ($1, $2, $3, $4, 'application/pdf', $5, $6, $7)`,
			newID(), applicationID, d.docType, d.fileName, len(pdfStub), pdfStub, daysAgo(5),
		)
		must(err, "insert application document")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO reference_contacts (id, application_id, company, full_name, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		newID(), applicationID, "Previous Employer SA", "Referee Name", "referee@example.com", "+24100000000",
	)
	must(err, "insert reference contact")

	fmt.Println("seeded 1 application with 3 documents and 1 reference")

	// ── 4. an evaluation on that application ────────────────────────────
	phaseScores := mustMarshal(map[string]int{"technical": 16, "cultural_fit": 17, "communication": 15})
	_, err = tx.Exec(ctx, `
		INSERT INTO evaluations (id, application_id, protocol, evaluator_id, phase_scores, weighted_aggregate, state, created_at, updated_at)
		VALUES ($1, $2, 'protocol_1', $3, $4, $5, 'completed', $6, $6)`,
		newID(), applicationID, userIDs["recruiter"], phaseScores, 16.0, daysAgo(2),
	)
	must(err, "insert evaluation")
	fmt.Println("seeded 1 completed evaluation")

	// ── 5. notifications ────────────────────────────────────────────────
	for _, n := range []struct {
		userID, notifType, title, body string
	}{
		{candidateID, "application.submitted", "Application received", "Your application for Backend Engineer has been received."},
		{candidateID, "application.status_changed", "Application under review", "Your application is now under review."},
	} {
		_, err = tx.Exec(ctx, `
			INSERT INTO notifications (id, user_id, type, title, body, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			newID(), n.userID, n.notifType, n.title, n.body, daysAgo(4),
		)
		must(err, "insert notification")
	}
	fmt.Println("seeded 2 notifications")

	must(tx.Commit(ctx), "commit")

	fmt.Println("\nseed complete")
	fmt.Printf("  admin login:     %s / password123\n", "admin"+seedDomain)
	fmt.Printf("  recruiter login: %s / password123\n", "recruiter"+seedDomain)
	fmt.Printf("  candidate login: %s / password123\n", "candidate.internal"+seedDomain)
}

func insertUser(ctx context.Context, tx pgx.Tx, id, email string, u userFixture) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, status, first_name, last_name, sexe, date_of_birth, candidate_status, no_corporate_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`,
		id, email, hashPassword("password123"), u.Role, u.Status, u.FirstName, u.LastName, u.Sexe,
		daysAgo(365*28), u.CandidateStatus, u.NoCorporateEmail, time.Now().UTC(),
	)
	return err
}

func must(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %v", msg, err)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
