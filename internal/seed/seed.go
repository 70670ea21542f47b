package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/glon/summercourse/internal/app/models"
	appRepos "github.com/glon/summercourse/internal/app/repositories"
	"github.com/glon/summercourse/internal/config"
	"github.com/glon/summercourse/internal/pkg/apperrors"
	"github.com/glon/summercourse/internal/pkg/auth"
)

// defaultCapacity is the capacity assigned to seeded courses
const defaultCapacity = 30

// defaultCourses is the summer course catalog created on first start
var defaultCourses = []string{
	"MATEMÁTICA I",
	"FUNDAMENTOS DE LA INFORMÁTICA",
	"LÓGICA MATEMÁTICA",
	"LENGUAJE Y COMUNICACIÓN",
	"INGLES I",
	"FORMACION CONSTITUCIONAL",
	"ECONOMIA DIGITAL EN VENEZUELA",
	"MATEMÁTICA II",
	"FÍSICA I",
	"ALGORITMOS I",
	"PROBLEMÁTICA CIENTÍFICA Y TECNOLÓGICA",
	"INGLES II",
	"ELECTIVA I",
	"ARTE Y CULTURA",
	"MATEMÁTICA III",
	"FÍSICA II",
	"ALGORITMOS II",
	"PROGRAMACIÓN I",
	"METODOLOGÍA Y TÉCNICAS DE INVESTIGACIÓN",
	"ELECTIVA II",
	"MATEMÁTICA IV",
	"PROBABILIDAD Y ESTADÍSTICA",
	"ESTRUCTURAS DISCRETAS I",
	"PROGRAMACIÓN II",
	"BASE DE DATOS",
	"ELECTIVA III",
	"ORGANIZACIÓN DEL COMPUTADOR",
	"ALGEBRA BOOLEANA",
	"ESTRUCTURAS DISCRETAS II",
	"PROGRAMACIÓN III",
	"TEORÍA DE SISTEMAS",
	"ELECTIVA IV",
	"ARQUITECTURA DEL COMPUTADOR",
	"MÉTODOS NUMÉRICOS",
	"INVESTIGACIÓN DE OPERACIONES",
	"INGENIERÍA ECONÓMICA",
	"SISTEMAS DE INFORMACIÓN I",
	"ELECTIVA V",
	"SISTEMAS OPERATIVOS",
	"CONTROL DE PROYECTOS",
	"ORGANIZACIÓN Y GESTIÓN EMPRESARIAL",
	"TRADUCTORES E INTERPRETES",
	"SISTEMAS DE INFORMACIÓN II",
	"REDES",
	"PASANTÍAS",
	"ELECTIVA DE ÁREA I",
	"LENGUAJES DE PROGRAMACIÓN",
	"SISTEMAS DE INFORMACIÓN III",
}

// CreateDefaultData creates the default admin user and course catalog if
// they don't exist. Errors are collected so a partial seed does not stop
// startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin user and course catalog)...")
	var finalErr error

	// --- Default admin user --- //
	adminEmail := cfg.Seed.AdminEmail
	adminPassword := cfg.Seed.AdminPassword
	if adminEmail == "" || adminPassword == "" {
		lgr.Warn().Msg("Admin seed credentials not configured, skipping admin user creation")
	} else {
		exists, err := userRepo.EmailExists(ctx, adminEmail)
		if err != nil {
			lgr.Error().Err(err).Msg("Error checking if admin user exists")
			finalErr = errors.Join(finalErr, err)
		} else if !exists {
			hashed, err := auth.HashPassword(adminPassword)
			if err != nil {
				lgr.Error().Err(err).Msg("Error hashing admin password")
				finalErr = errors.Join(finalErr, err)
			} else {
				admin := &appModels.User{
					Email:    adminEmail,
					Password: hashed,
					Role:     appModels.RoleAdmin,
				}
				if err := userRepo.CreateWithStudent(ctx, admin, nil); err != nil {
					lgr.Error().Err(err).Msg("Error creating default admin user")
					finalErr = errors.Join(finalErr, err)
				} else {
					lgr.Info().Str("email", adminEmail).Msg("Default admin user created")
				}
			}
		}
	}

	// --- Course catalog --- //
	created := 0
	for _, name := range defaultCourses {
		course := &appModels.Course{Name: name, Capacity: defaultCapacity}
		err := courseRepo.Create(ctx, course)
		if err != nil {
			if errors.Is(err, apperrors.ErrCourseAlreadyExists) {
				continue
			}
			lgr.Error().Err(err).Str("course", name).Msg("Error creating seed course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created++
	}
	if created > 0 {
		lgr.Info().Int("created", created).Msg("Seed courses created")
	}

	return finalErr
}
