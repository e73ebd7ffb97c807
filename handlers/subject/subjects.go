package subject

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

// SubjectHandler handles subject-related requests
type SubjectHandler struct {
	catalog   *services.CatalogService
	validator *validation.Validator
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(catalog *services.CatalogService) *SubjectHandler {
	return &SubjectHandler{
		catalog:   catalog,
		validator: validation.NewValidator(),
	}
}

// ListSubjects handles GET /api/subjects
func (h *SubjectHandler) ListSubjects(c *fiber.Ctx) error {
	subjects, err := h.catalog.ListSubjects(c.UserContext())
	if err != nil {
		log.Errorf("Error fetching subjects: %v", err)
		return response.InternalServerError(c, "Failed to fetch subjects")
	}

	return response.Success(c, subjects)
}

// CreateSubject handles POST /api/subjects
func (h *SubjectHandler) CreateSubject(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	subject, err := h.catalog.CreateSubject(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrParentNotFound):
			return response.BadRequest(c, "Invalid faculty ID.")
		case errors.Is(err, database.ErrDuplicateName):
			return response.Conflict(c, "This subject already exists in this faculty.")
		}
		log.Errorf("Error creating subject: %v", err)
		return response.InternalServerError(c, "Failed to create subject.")
	}

	return response.Created(c, subject)
}
