package rest

import (
	"context"
	"net/http"

	core_port "github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Server owns the HTTP listener and the route table.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewServer wires the routers. Everything under /api/v1 except login
// sits behind the password gate.
func NewServer(port string,
	auth *AuthHandler,
	properties *PropertyHandler,
	board *BoardHandler,
	notes *NoteHandler,
	attachments *AttachmentHandler,
	extract *ExtractHandler,
	events *EventsHandler,
	corsOrigin string,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/properties", properties.List)
			r.Post("/properties", properties.Create)
			r.Get("/properties/{propertyID}", properties.Get)
			r.Put("/properties/{propertyID}", properties.Update)
			r.Delete("/properties/{propertyID}", properties.Delete)
			r.Patch("/properties/{propertyID}/status", properties.PatchStatus)
			r.Patch("/properties/{propertyID}/rating", properties.PatchRating)
			r.Patch("/properties/{propertyID}/flag", properties.ToggleFlag)
			r.Patch("/properties/{propertyID}/coordinates", properties.PatchCoordinates)

			r.Get("/board", board.View)
			r.Post("/board/move", board.Move)
			r.Post("/board/collapse", board.Collapse)

			r.Get("/map/markers", properties.MapMarkers)

			r.Get("/properties/{propertyID}/notes", notes.List)
			r.Post("/properties/{propertyID}/notes", notes.Create)
			r.Put("/notes/{noteID}", notes.Update)
			r.Delete("/notes/{noteID}", notes.Delete)
			r.Get("/notes/counts", notes.Counts)

			r.Get("/properties/{propertyID}/attachments", attachments.List)
			r.Post("/properties/{propertyID}/attachments", attachments.Upload)
			r.Delete("/attachments/{attachmentID}", attachments.Delete)

			r.Post("/extract-property", extract.Extract)
			r.Get("/fetch-html", extract.FetchHTML)
			r.Post("/fetch-html", extract.FetchHTML)

			r.Get("/events", events.Stream)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
