package main

import (
	"log"

	"hypotest/internal/config"
	"hypotest/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	server := ui.NewServer(cfg)
	if err := server.Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
