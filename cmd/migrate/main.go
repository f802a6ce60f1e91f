package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	var (
		logLevel      string
		agencyName    string
		ownerName     string
		ownerEmail    string
		ownerPassword string
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&agencyName, "agency", "Demo Agency", "Agency name for seeding")
	flag.StringVar(&ownerName, "owner-name", "Agency Owner", "Owner user name for seeding")
	flag.StringVar(&ownerEmail, "owner-email", "owner@example.com", "Owner login email for seeding")
	flag.StringVar(&ownerPassword, "owner-password", "", "Owner login password for seeding (required for seed)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	switch command {
	case "up":
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Schema migration failed", zap.Error(err))
		}
		log.Info("Schema migrated")

	case "seed":
		if ownerPassword == "" {
			log.Fatal("Seed requires -owner-password")
		}
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Schema migration failed", zap.Error(err))
		}
		if err := seed(db, log, agencyName, ownerName, ownerEmail, ownerPassword); err != nil {
			log.Fatal("Seed failed", zap.Error(err))
		}

	case "ping":
		if err := db.Ping(); err != nil {
			log.Fatal("Database unreachable", zap.Error(err))
		}
		log.Info("Database reachable")

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// seed creates one agency with an OWNER login and a sample client so a
// fresh install has something to log into. Re-running against a database
// that already has the owner email fails at the unique constraint.
func seed(db *persistence.Database, log *zap.Logger, agencyName, ownerName, ownerEmail, ownerPassword string) error {
	ctx := context.Background()

	agencies := persistence.NewGormAgencyRepository(db.DB)
	users := persistence.NewGormUserRepository(db.DB)
	clients := persistence.NewGormClientRepository(db.DB)

	agency, err := identity.NewAgency(agencyName)
	if err != nil {
		return err
	}
	if err := agencies.Save(ctx, agency); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	owner, err := identity.NewUser(agency.ID, ownerName, ownerEmail, string(hash), identity.RoleOwner)
	if err != nil {
		return err
	}
	if err := users.Save(ctx, owner); err != nil {
		return err
	}

	client, err := crm.NewClient(agency.ID, "Sample Client", "Sample Contact",
		"+62 812 0000 0000", "contact@sample.example", crm.PackageBasic,
		crm.ClientStatusActive, time.Now())
	if err != nil {
		return err
	}
	if err := clients.Save(ctx, client); err != nil {
		return err
	}

	log.Info("Seed complete",
		zap.String("agency_id", agency.ID.String()),
		zap.String("owner_email", ownerEmail),
		zap.String("client_code", client.ClientCode),
	)
	return nil
}

func printUsage() {
	fmt.Println(`CRM Database Migration Tool

Usage:
  migrate [flags] <command>

Commands:
  up      Apply the schema (gorm AutoMigrate)
  seed    Apply the schema and create an agency, owner login, and sample client
  ping    Verify database connectivity

Flags:
  -log-level string       Log level: debug, info, warn, error (default: info)
  -agency string          Agency name for seeding
  -owner-name string      Owner user name for seeding
  -owner-email string     Owner login email for seeding
  -owner-password string  Owner login password for seeding (required for seed)

Examples:
  # Apply the schema
  migrate up

  # Seed a fresh install
  migrate -owner-email you@agency.test -owner-password changeme seed`)
}
