package main

import (
	"log"

	"github.com/joho/godotenv"

	"blogmaster/config"
	"blogmaster/models"
	"blogmaster/routes"
	"blogmaster/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(cfg, &models.User{}, &models.Category{}, &models.Post{}, &models.Comment{})

	r := routes.SetupRouter(db, cfg)

	utils.Sugar.Infof("starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
