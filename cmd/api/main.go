package main

import (
	"credito_tributario/internal/adapter/http/routes"
	"credito_tributario/internal/infrastructure/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Tax Credit Recovery API
// @version         1.0
// @description     Back office for tax credit recovery: clients, proposals, contracts and the operator session.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run(config.Load())
}
