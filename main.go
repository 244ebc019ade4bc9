package main

import (
	"log"
	"time"

	"elearn/config"
	catalogController "elearn/controllers/catalog"
	"elearn/database"
	adminRoutes "elearn/routers/adminRoutes"
	authRoutes "elearn/routers/authRoutes"
	catalogRoutes "elearn/routers/catalogRoutes"
	courseRoutes "elearn/routers/courseRoutes"
	studentRoutes "elearn/routers/studentRoutes"
	"elearn/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	catalogController.InitCache(time.Duration(config.AppConfig.CategoryCacheTTL) * time.Second)
	utils.StartCatalogScheduler(database.Database.Db, catalogController.Cache)

	catalogRoutes.SetupCatalogRoutes(app)
	authRoutes.SetupAuthRoutes(app)
	studentRoutes.SetupStudentRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
