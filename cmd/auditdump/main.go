// auditdump prints the recent audit trail for one portal account as JSON,
// newest first. Useful when chasing what a failed automation run actually
// sent and got back.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/anchorleg/anchorleg/internal/app"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	var username = flag.String("username", "", "Portal account to dump records for")
	var limit = flag.Int("limit", 50, "Maximum number of records")
	flag.Parse()

	if *username == "" {
		logger.Error.Fatalf("-username is required")
	}

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	records, err := service.Store.ListRecords(*username, *limit)
	if err != nil {
		logger.Error.Fatalf("Failed to list audit records: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		logger.Error.Fatalf("Failed to encode records: %v", err)
	}
}
