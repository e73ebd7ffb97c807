package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/studyshare-api/handlers"
	faculty_handlers "github.com/sahilchouksey/studyshare-api/handlers/faculty"
	note_handlers "github.com/sahilchouksey/studyshare-api/handlers/note"
	subject_handlers "github.com/sahilchouksey/studyshare-api/handlers/subject"
	university_handlers "github.com/sahilchouksey/studyshare-api/handlers/university"
	"github.com/sahilchouksey/studyshare-api/services"
	"github.com/sahilchouksey/studyshare-api/utils/cache"
	"github.com/sahilchouksey/studyshare-api/utils/metrics"
	"github.com/sahilchouksey/studyshare-api/utils/middleware"
)

// Dependencies are the shared services the routes are built from
type Dependencies struct {
	Catalog        *services.CatalogService
	Cache          cache.Cache
	Metrics        *metrics.Metrics
	IdempotencyTTL time.Duration
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	universityHandler := university_handlers.NewUniversityHandler(deps.Catalog)
	facultyHandler := faculty_handlers.NewFacultyHandler(deps.Catalog)
	subjectHandler := subject_handlers.NewSubjectHandler(deps.Catalog)
	noteHandler := note_handlers.NewNoteHandler(deps.Catalog)

	// Replayed writes are rejected while their key is remembered
	idempotent := middleware.NewIdempotencyGuard(deps.Cache, deps.IdempotencyTTL).Handler()

	// Health and metrics
	app.Get("/", handlers.HandleRoot)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, deps.Catalog)
	})
	app.Get("/metrics", deps.Metrics.Handler())

	api := app.Group("/api")

	// Universities
	universities := api.Group("/universities")
	universities.Get("/", universityHandler.ListUniversities)
	universities.Post("/", idempotent, universityHandler.CreateUniversity)

	// Faculties
	faculties := api.Group("/faculties")
	faculties.Get("/", facultyHandler.ListFaculties)
	faculties.Post("/", idempotent, facultyHandler.CreateFaculty)

	// Subjects
	subjects := api.Group("/subjects")
	subjects.Get("/", subjectHandler.ListSubjects)
	subjects.Post("/", idempotent, subjectHandler.CreateSubject)

	// Notes
	notes := api.Group("/notes")
	notes.Get("/", noteHandler.ListNotes)
	notes.Post("/", idempotent, noteHandler.CreateNote)
	notes.Get("/:id", noteHandler.GetNote)
	notes.Get("/:id/download", noteHandler.DownloadNote)
	notes.Put("/:id", idempotent, noteHandler.UpdateNote)
	notes.Delete("/:id", noteHandler.DeleteNote)
}
