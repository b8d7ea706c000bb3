package main // Runs the in-memory stand-in for the shop API, for local development

import (
	"log"

	"github.com/sweetshop/sweetshop-client/internal/config"
	"github.com/sweetshop/sweetshop-client/internal/stub"
)

func main() {
	cfg := config.LoadStub()

	srv := stub.New(cfg.JWTSecret)
	if err := srv.SeedAdmin(cfg.AdminUser, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	addr := ":" + cfg.Port
	log.Printf("stub shop API listening on %s (admin account %q)", addr, cfg.AdminUser)

	if err := srv.Start(addr); err != nil {
		log.Fatal(err)
	}
}
