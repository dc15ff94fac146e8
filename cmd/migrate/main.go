package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"shopmate-chat/config"
	"shopmate-chat/migrations"
	"shopmate-chat/pkg/database"

	"github.com/pressly/goose/v3"
)

const usage = `
Shopmate Chat - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Apply all pending migrations
  down        Rollback the last migration
  status      Show migration status

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	command := flag.Arg(0)

	cfg := config.LoadConfig()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set goose dialect: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Migration command %q failed: %v", command, err)
	}
}
