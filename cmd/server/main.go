package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blackeffigyeel/exam-orch/internal/app"
	"github.com/blackeffigyeel/exam-orch/internal/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to start:", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.Router(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	go func() {
		log.Printf("ExamOrch API server is running on port %s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST/GET /api/sessions")
		log.Println("  GET      /api/sessions/{id}")
		log.Println("  PATCH    /api/sessions/{id}/close-enrollment")
		log.Println("  POST     /api/sessions/{id}/enroll")
		log.Println("  DELETE   /api/sessions/{id}/enroll/{studentId}")
		log.Println("  GET      /api/sessions/{id}/candidates")
		log.Println("  GET      /api/sessions/{id}/waitlist")
		log.Println("  GET      /api/candidates/{studentId}/status")
		log.Println("  POST/GET /api/sessions/{id}/proctors")
		log.Println("  DELETE   /api/sessions/{id}/proctors/{proctorId}")
		log.Println("  GET      /api/proctors/{proctorId}/sessions")
		log.Println("  WS       /api/ws/sessions/{id}")
		log.Println("  GET      /api-docs/openapi.json")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}
	if err := a.Close(shutdownCtx); err != nil {
		log.Println("Failed to close connections:", err)
	}

	log.Println("Server exited")
}
