package handlers

import (
	"github.com/go-chi/chi/v5"
)

func RegisterSettingsRoutes(r chi.Router) {
	r.Route("/settings/app", func(r chi.Router) {
		r.Get("/", GetApplicationSettingsHandler)
		r.Put("/", SaveApplicationSettingsHandler)
	})
}
