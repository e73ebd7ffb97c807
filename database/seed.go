package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/model"
	"github.com/sahilchouksey/studyshare-api/utils/validation"
)

// SeedFaculty is a faculty and the subjects it should contain
type SeedFaculty struct {
	Name     string
	Subjects []string
}

// SeedUniversity is a university and the faculties it should contain
type SeedUniversity struct {
	Name        string
	Description string
	Type        model.UniversityType
	Faculties   []SeedFaculty
}

// DefaultCatalog is the starter catalog loaded by cmd/seed
var DefaultCatalog = []SeedUniversity{
	{
		Name:        "Tehran University",
		Description: "One of the oldest and most prestigious universities in Iran",
		Type:        model.UniversityTypeTechnical,
		Faculties: []SeedFaculty{
			{Name: "Engineering"},
			{Name: "Computer Science", Subjects: []string{"Data Structures", "Algorithms", "Database Systems"}},
		},
	},
	{
		Name:        "Sharif University of Technology",
		Description: "Premier engineering and technology university in Iran",
		Type:        model.UniversityTypeTechnical,
		Faculties: []SeedFaculty{
			{Name: "Electrical Engineering", Subjects: []string{"Circuit Theory", "Digital Logic Design"}},
			{Name: "Computer Engineering"},
		},
	},
	{
		Name:        "Tehran University of Medical Sciences",
		Description: "Leading medical university in Iran",
		Type:        model.UniversityTypeMedical,
		Faculties: []SeedFaculty{
			{Name: "Medicine", Subjects: []string{"Anatomy", "Physiology"}},
		},
	},
}

// Seeder handles database seeding operations
type Seeder struct {
	store Storage
}

// NewSeeder creates a new seeder instance
func NewSeeder(store Storage) *Seeder {
	return &Seeder{store: store}
}

// SeedAll loads the given catalog. Entries that already exist are reused,
// so running the seeder twice is harmless.
func (s *Seeder) SeedAll(ctx context.Context, catalog []SeedUniversity) error {
	log.Info("🌱 Starting database seeding...")

	existing, err := s.store.ListUniversities(ctx)
	if err != nil {
		return fmt.Errorf("failed to list universities: %w", err)
	}

	for _, seedUni := range catalog {
		university := findUniversity(existing, seedUni.Name)
		if university == nil {
			university = &model.University{
				Name:        seedUni.Name,
				Description: seedUni.Description,
				Type:        seedUni.Type,
			}
			if err := s.store.CreateUniversity(ctx, university); err != nil {
				return fmt.Errorf("failed to seed university %q: %w", seedUni.Name, err)
			}
			log.Infof("✅ Created university: %s", university.Name)
		} else {
			log.Infof("⏭️  University %s already exists, skipping...", university.Name)
		}

		for _, seedFac := range seedUni.Faculties {
			faculty := findFaculty(university.Faculties, seedFac.Name)
			if faculty == nil {
				faculty = &model.Faculty{Name: seedFac.Name, UniversityID: university.ID}
				if err := s.store.CreateFaculty(ctx, faculty); err != nil {
					return fmt.Errorf("failed to seed faculty %q: %w", seedFac.Name, err)
				}
			}

			for _, subjectName := range seedFac.Subjects {
				subject := &model.Subject{Name: subjectName, FacultyID: faculty.ID}
				err := s.store.CreateSubject(ctx, subject)
				if err != nil && !errors.Is(err, ErrDuplicateName) {
					return fmt.Errorf("failed to seed subject %q: %w", subjectName, err)
				}
			}
		}
	}

	log.Info("✅ Database seeding completed successfully!")
	return nil
}

func findUniversity(universities []model.University, name string) *model.University {
	for i := range universities {
		if validation.SameName(universities[i].Name, name) {
			return &universities[i]
		}
	}
	return nil
}

func findFaculty(faculties []model.Faculty, name string) *model.Faculty {
	for i := range faculties {
		if validation.SameName(faculties[i].Name, name) {
			return &faculties[i]
		}
	}
	return nil
}
