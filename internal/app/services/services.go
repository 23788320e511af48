// Package services contains the business logic layer. Each service declares
// the narrow store interface it consumes so the HTTP layer and tests can work
// against fakes; the concrete repositories satisfy them.
package services

import (
	"github.com/altan/schoolhub/internal/aibridge"
	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/repositories"
	"github.com/altan/schoolhub/internal/cache"
	"github.com/altan/schoolhub/internal/pkg/auth"
)

// Services bundles all service instances for dependency injection
type Services struct {
	AuthService       *AuthService
	StudentService    *StudentService
	ClassService      *ClassService
	SubjectService    *SubjectService
	ScheduleService   *ScheduleService
	GradeService      *GradeService
	AttendanceService *AttendanceService
	AIService         *AIService
}

// NewServices wires all services over the shared repositories, cache and
// outbound clients.
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	cacheClient *cache.Client,
	aiClient *aibridge.Client,
) *Services {
	policy := appauth.NewPolicyService(repos.StudentRepository)

	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService, cacheClient),
		StudentService:    NewStudentService(repos.StudentRepository, policy),
		ClassService:      NewClassService(repos.ClassRepository, repos.UserRepository),
		SubjectService:    NewSubjectService(repos.SubjectRepository),
		ScheduleService:   NewScheduleService(repos.ScheduleRepository, repos.UserRepository, repos.ClassRepository, repos.SubjectRepository),
		GradeService:      NewGradeService(repos.GradeRepository, repos.StudentRepository, repos.SubjectRepository, policy),
		AttendanceService: NewAttendanceService(repos.AttendanceRepository, repos.StudentRepository, repos.ClassRepository, policy),
		AIService:         NewAIService(aiClient, cacheClient),
	}
}
