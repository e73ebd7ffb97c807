package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/services"
)

// HandleRoot answers the plain-text liveness check at /
func HandleRoot(c *fiber.Ctx) error {
	return c.SendString("StudyShare backend running!")
}

// HandleCheckHealth reports service and storage health
func HandleCheckHealth(c *fiber.Ctx, catalog *services.CatalogService) error {
	if err := catalog.HealthCheck(); err != nil {
		log.Errorf("Health check failed: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "degraded",
			"database": "unreachable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok", "database": "ok"})
}
