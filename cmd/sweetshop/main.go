package main // Entry point for the terminal client

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/sweetshop/sweetshop-client/internal/api"
	"github.com/sweetshop/sweetshop-client/internal/app"
	"github.com/sweetshop/sweetshop-client/internal/catalog"
	"github.com/sweetshop/sweetshop-client/internal/config"
	"github.com/sweetshop/sweetshop-client/internal/session"
)

func main() {
	server := flag.String("server", "", "override the shop API base URL")
	flag.Parse()

	cfg := config.Load()
	if *server != "" {
		cfg.BaseURL = strings.TrimRight(*server, "/")
	}

	sess := session.New(session.NewFileStorage(cfg.SessionFile))
	client := api.New(cfg, sess)
	shell := app.New(sess, client, catalog.New(client), os.Stdin, os.Stdout)

	log.Printf("sweetshop client: using %s", cfg.BaseURL)
	if err := shell.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
