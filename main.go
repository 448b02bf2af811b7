package main

import (
	"log"

	"github.com/sspl-t10/registration/cache"
	"github.com/sspl-t10/registration/config"
	"github.com/sspl-t10/registration/controllers"
	"github.com/sspl-t10/registration/gateway"
	"github.com/sspl-t10/registration/routes"
	"github.com/sspl-t10/registration/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Fail fast: without gateway credentials there is nothing this service
	// can do.
	if err := cfg.ValidateGatewayCredentials(); err != nil {
		utils.LogError("Gateway credentials missing: %v", err)
		log.Fatal("Gateway credentials missing:", err)
	}
	gateway.Init(cfg.RazorpayKey, cfg.RazorpaySecret)

	config.InitDB()
	cache.Setup()

	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to bootstrap admin account: %v", err)
		log.Fatal("Failed to bootstrap admin account:", err)
	}

	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = utils.DefaultPort
	}
	utils.LogInfo("Payment backend starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
