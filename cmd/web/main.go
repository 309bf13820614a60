// @title           Gym API
// @version         1.0
// @description     REST API для управления залом: участники, тренеры, оборудование, планы, подписки, финансы.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	_ "gym_backend/docs"
	"gym_backend/internal/app"
)

func main() {
	app.Run()
}
