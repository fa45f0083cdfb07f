package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/captable/internal/http/company"
	"github.com/MrJamesThe3rd/captable/internal/http/contract"
	"github.com/MrJamesThe3rd/captable/internal/http/event"
	"github.com/MrJamesThe3rd/captable/internal/http/stakeholder"
)

func New(
	allowedOrigins []string,
	companyV1 *company.Handler,
	stakeholderV1 *stakeholder.Handler,
	contractV1 *contract.Handler,
	eventV1 *event.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", companyV1.UserRoutes)

		r.Route("/businesses", func(r chi.Router) {
			companyV1.Routes(r)

			r.Route("/{businessID}", func(r chi.Router) {
				companyV1.BusinessRoutes(r)
				eventV1.BusinessRoutes(r)

				r.Route("/stakeholders", func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					stakeholderV1.Routes(r)
				})

				r.Route("/contracts", contractV1.Routes)

				r.Route("/events", func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					eventV1.Routes(r)
				})
			})
		})
	})

	return router
}
