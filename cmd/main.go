package main

import (
	"io"
	"log"

	"raffle/internal/config"
	"raffle/internal/events"
	"raffle/internal/handlers"
	"raffle/internal/journal"
	"raffle/internal/minting"
	"raffle/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

func main() {
	// 1. Load the process configuration (.env + environment).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	defer logger.Init("raffle", cfg.Verbose, false, io.Discard).Close()

	campaignConfig, err := cfg.Campaign()
	if err != nil {
		log.Fatalf("Invalid campaign configuration: %v", err)
	}

	// 2. Assemble the notification sinks. The journal is optional; the
	// log sink is always on.
	sinks := []events.Sink{events.NewLogSink()}
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			log.Fatalf("Failed to open notification journal: %v", err)
		}
		sinks = append(sinks, j)
	}

	// 3. Pick the minting collaborator.
	var minter minting.Minter = minting.NewLogMinter()
	if cfg.MintingEndpoint != "" {
		minter = minting.NewHTTPMinter(cfg.MintingEndpoint)
	}

	// 4. Create the campaign.
	service, err := services.NewCampaignService(campaignConfig, services.CampaignDeps{
		Owner:   cfg.OperatorAddress,
		Manager: cfg.ManagerAddress,
		Minter:  minter,
		Sink:    events.NewMultiSink(sinks...),
	})
	if err != nil {
		log.Fatalf("Failed to create campaign: %v", err)
	}

	// 5. Set up the Gin router and register routes.
	httpHandler := handlers.NewHTTPHandler(service)
	r := gin.Default()
	httpHandler.RegisterRoutes(r)

	// 6. Run the server.
	logger.Infof("campaign %q listening on %s", campaignConfig.Name, cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
