package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/config"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/database"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/handlers"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/logging"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/middleware"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/repositories"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/storage"

	"github.com/gofiber/fiber/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.Default()
	ctx := context.Background()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	blobs, err := storage.New(cfg.UploadDir)
	if err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository(db)
	resourceRepo := repositories.NewResourceRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	downloadRepo := repositories.NewDownloadRepository(db)

	authHandlers := handlers.NewAuthHandlers(userRepo, log.With("component", "auth"), cfg.AdminEmail, cfg.SessionTTL)
	resourceHandlers := handlers.NewResourceHandlers(userRepo, resourceRepo, reviewRepo, downloadRepo, blobs, log.With("component", "resources"))
	reviewHandlers := handlers.NewReviewHandlers(reviewRepo, resourceRepo, log.With("component", "reviews"))
	accountHandlers := handlers.NewAccountHandlers(userRepo, resourceRepo, reviewRepo, downloadRepo)

	app := fiber.New(fiber.Config{
		AppName:   "studyshare",
		BodyLimit: cfg.MaxUploadBytes,
	})

	registerRoutes(app, authHandlers, resourceHandlers, reviewHandlers, accountHandlers)

	log.Info(ctx, "server starting", "addr", cfg.ListenAddr, "upload_dir", cfg.UploadDir)
	return app.Listen(cfg.ListenAddr)
}

func registerRoutes(
	app *fiber.App,
	auth *handlers.AuthHandlers,
	resources *handlers.ResourceHandlers,
	reviews *handlers.ReviewHandlers,
	accounts *handlers.AccountHandlers,
) {
	app.Post("/signup", auth.SignupHandler)
	app.Post("/login", auth.LoginHandler)
	app.Post("/logout", auth.LogoutHandler)

	authed := app.Group("", middleware.RequireAuth())

	authed.Get("/dashboard", accounts.DashboardHandler)
	authed.Get("/my_profile", accounts.ProfileHandler)
	authed.Get("/get_student_info",
		middleware.RequireRole(middleware.RoleAdmin, middleware.RoleStudent),
		accounts.StudentInfoHandler)

	authed.Get("/my_resources", resources.ListOwnHandler)
	authed.Post("/upload_resource", resources.UploadHandler)
	authed.Post("/edit_resource/:id", resources.EditHandler)
	authed.Post("/delete_resource/:id", resources.DeleteHandler)
	authed.Get("/download/:id", resources.DownloadHandler)
	authed.Get("/access_resources", resources.ListAccessibleHandler)
	authed.Get("/resource/:id", resources.DetailHandler)
	authed.Get("/download_history", resources.DownloadHistoryHandler)

	authed.Post("/submit_review/:id", reviews.SubmitHandler)
	authed.Post("/delete_review/:id", reviews.DeleteHandler)
}
