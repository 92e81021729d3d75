package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studyhub-backend/internal/handlers"
	"studyhub-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	generateHandler *handlers.GenerateHandler,
	attemptHandler *handlers.AttemptHandler,
	pdfQAHandler *handlers.PDFQAHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Per-IP rate limiters. Quiz and battle-flow calls are the most
	// expensive generations, so they get a tighter limit.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	genLimiter := middleware.NewRateLimiter(10, time.Minute)
	strictLimiter := middleware.NewRateLimiter(5, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Generation Routes ────
		r.Route("/generate", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(genLimiter.Middleware)
				r.Post("/summary", generateHandler.Summarize)
				r.Post("/visual-description", generateHandler.VisualDescription)
				r.Post("/map-info", generateHandler.MapInfo)
			})

			r.Group(func(r chi.Router) {
				r.Use(strictLimiter.Middleware)
				r.Post("/quiz", generateHandler.Quiz)
				r.Post("/battle-flow", generateHandler.BattleFlow)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Use(genLimiter.Middleware)
				r.Post("/writing-feedback", generateHandler.WritingFeedback)
				r.Post("/equation-balance", generateHandler.EquationBalance)
				r.Post("/process-explainer", generateHandler.ProcessExplainer)
				r.Post("/flashcards", generateHandler.Flashcards)
			})
		})

		// ──── Chatbot ────
		r.Group(func(r chi.Router) {
			r.Use(genLimiter.Middleware)
			r.Post("/chat", generateHandler.Chat)
		})

		// ──── Quiz Attempts ────
		r.Route("/attempts", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", attemptHandler.Save)
			r.Get("/", attemptHandler.History)
		})

		// ──── PDF Question Answering ────
		r.Route("/pdf-qa", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(genLimiter.Middleware)
			r.Post("/process", pdfQAHandler.Process)
			r.Post("/ask", pdfQAHandler.Ask)
		})

		// ──── Subjects ────
		r.Get("/subjects", handlers.Subjects)
	})

	return r
}
