package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/nudge-api/internal/api/middleware"
	"github.com/phrazzld/nudge-api/internal/service"
)

// NewRouter creates and configures the application router with all routes
// and middleware.
func NewRouter(trackerService service.TrackerService) http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	logHandler := NewLogHandler(trackerService)
	reminderHandler := NewReminderHandler(trackerService)
	assetHandler := NewAssetHandler(trackerService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", logHandler.GetDashboard)

		// Life log endpoints
		r.Post("/logs", logHandler.CreateLog)
		r.Delete("/logs/{id}", logHandler.DeleteLog)
		r.Post("/logs/batch-delete", logHandler.BatchDeleteLogs)

		// Reminder endpoints
		r.Get("/reminders", reminderHandler.ListReminders)
		r.Post("/reminders", reminderHandler.CreateReminder)
		r.Post("/reminders/batch-delete", reminderHandler.BatchDeleteReminders)
		r.Post("/reminders/reorder", reminderHandler.ReorderReminders)
		r.Put("/reminders/{id}", reminderHandler.UpdateReminder)
		r.Delete("/reminders/{id}", reminderHandler.DeleteReminder)
		r.Patch("/reminders/{id}/status", reminderHandler.UpdateStatus)
		r.Post("/reminders/{id}/complete", reminderHandler.CompleteReminder)
		r.Post("/reminders/{id}/revert", reminderHandler.RevertReminder)
		r.Post("/reminders/{id}/pin", reminderHandler.TogglePin)
		r.Post("/reminders/{id}/clone", reminderHandler.CloneReminder)

		// Digital asset endpoints
		r.Get("/assets", assetHandler.ListAssets)
		r.Post("/assets", assetHandler.CreateAsset)
		r.Post("/assets/batch-delete", assetHandler.BatchDeleteAssets)
		r.Post("/assets/reorder", assetHandler.ReorderAssets)
		r.Put("/assets/{id}", assetHandler.UpdateAsset)
		r.Patch("/assets/{id}/status", assetHandler.UpdateStatus)
		r.Delete("/assets/{id}", assetHandler.DeleteAsset)
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
