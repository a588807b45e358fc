package httpapi

import "github.com/gofiber/fiber/v2"

// SetupRoutes configures all HTTP routes.
func SetupRoutes(app *fiber.App, h *Handler) {
	app.Get("/health", h.HealthCheck)

	api := app.Group("/api/v1")
	{
		api.Get("/regions", h.ListRegions)
		api.Get("/regions/:name", h.GetRegionView)
		api.Get("/regions/:name/timeseries", h.GetTimeseries)

		api.Get("/frame", h.GetFrame)
		api.Post("/frames", h.RecordFrame)

		api.Get("/dvi", h.GetDvi)
		api.Get("/socio", h.GetSocio)
		api.Get("/socio/prior", h.GetPriorSocio)

		api.Get("/classify", h.Classify)
		api.Get("/change", h.Change)
		api.Get("/bands", h.Bands)
		api.Get("/compare", h.Compare)
	}
}
