// cmd/migrate/main.go
//
// migrate applies (or rolls back) the Postgres activity schema.
//
//	DATABASE_URL=postgres://... go run ./cmd/migrate            # up
//	DATABASE_URL=postgres://... go run ./cmd/migrate -down 1    # roll back one step
package main

import (
	"flag"
	"log"
	"strings"

	dbadapter "nftminter/internal/adapters/out/db"
	appcfg "nftminter/internal/infra/config"
)

func main() {
	down := flag.Int("down", 0, "roll back N steps instead of migrating up")
	flag.Parse()

	url := strings.TrimSpace(appcfg.Load().DatabaseURL)
	if url == "" {
		log.Fatalf("[migrate] DATABASE_URL is empty")
	}

	if *down > 0 {
		if err := dbadapter.RollbackMigrations(url, *down); err != nil {
			log.Fatalf("[migrate] %v", err)
		}
		log.Printf("[migrate] rolled back %d step(s)", *down)
		return
	}

	if err := dbadapter.RunMigrations(url); err != nil {
		log.Fatalf("[migrate] %v", err)
	}
	log.Printf("[migrate] schema up to date")
}
