package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/sspl-t10/registration/proxy"
	"github.com/sspl-t10/registration/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	_ = godotenv.Load()

	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:" + utils.DefaultPort
	}
	distDir := os.Getenv("DIST_DIR")
	if distDir == "" {
		distDir = "dist"
	}

	router := proxy.NewRouter(proxy.Config{
		BackendURL: backendURL,
		DistDir:    distDir,
	})

	port := os.Getenv("PROXY_PORT")
	if port == "" {
		port = utils.DefaultProxyPort
	}
	utils.LogInfo("Edge proxy starting on port %s, forwarding /api to %s", port, backendURL)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting proxy: %v", err)
		log.Fatal("Error starting proxy:", err)
	}
}
