package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/example/useradmin/internal/config"
	"github.com/example/useradmin/internal/repository/mysql"
	"github.com/example/useradmin/internal/service"
)

// Creates the first author so the panel has a working login.
func main() {
	username := flag.String("username", "admin", "author username")
	password := flag.String("password", "", "author password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("usage: seed-author -username <name> -password <password>")
	}

	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := mysql.Open(&cfg.MySQL)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}

	svc := service.NewAuthorService(mysql.NewAuthorRepository(db), &cfg.JWT, nil)
	a, err := svc.Register(context.Background(), *username, *password)
	if err != nil {
		log.Fatalf("create author: %v", err)
	}
	fmt.Printf("created author %q (id=%d)\n", a.Username, a.ID)
}
