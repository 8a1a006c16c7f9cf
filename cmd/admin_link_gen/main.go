package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/config"
	"kras-kickers/volunteers/internal/logging"
	"kras-kickers/volunteers/internal/services"
)

// Prints an admin activation link without sending mail, for bootstrapping the
// first administrator.
func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to an optional TOML config file")
	email := flag.String("email", "", "admin address inside the admin domain")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	verification := services.NewVerificationService(
		common.NewTokenService([]byte(cfg.SecretKey)),
		common.LogMailer{},
		nil,
		nil,
		services.VerificationConfig{
			AdminDomain:   cfg.AdminEmailDomain,
			PublicBaseURL: cfg.PublicBaseURL,
			EmailMaxAge:   cfg.EmailTokenMaxAge(),
			AdminMaxAge:   cfg.AdminTokenMaxAge(),
		},
	)

	link, err := verification.AdminActivationLink(*email)
	if err != nil {
		log.Fatalf("%s is not inside the admin domain %s", *email, cfg.AdminEmailDomain)
	}

	fmt.Printf("Admin activation link (valid %s):\n%s\n", cfg.AdminTokenMaxAge(), link)
}
