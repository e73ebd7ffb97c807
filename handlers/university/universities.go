package university

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/database"
	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/sahilchouksey/studyshare-api/services"
	"github.com/sahilchouksey/studyshare-api/utils/response"
	"github.com/sahilchouksey/studyshare-api/utils/validation"
)

// UniversityHandler handles university-related requests
type UniversityHandler struct {
	catalog   *services.CatalogService
	validator *validation.Validator
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(catalog *services.CatalogService) *UniversityHandler {
	return &UniversityHandler{
		catalog:   catalog,
		validator: validation.NewValidator(),
	}
}

// ListUniversities handles GET /api/universities
func (h *UniversityHandler) ListUniversities(c *fiber.Ctx) error {
	universities, err := h.catalog.ListUniversities(c.UserContext())
	if err != nil {
		log.Errorf("Error fetching universities: %v", err)
		return response.InternalServerError(c, "Failed to fetch universities")
	}

	return response.Success(c, universities)
}

// CreateUniversity handles POST /api/universities
func (h *UniversityHandler) CreateUniversity(c *fiber.Ctx) error {
	// Parse request body
	var req dto.CreateUniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate request
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	university, err := h.catalog.CreateUniversity(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateName) {
			return response.Conflict(c, "University already exists.")
		}
		log.Errorf("Error creating university: %v", err)
		return response.InternalServerError(c, "Failed to create university.")
	}

	return response.Created(c, university)
}
