package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository instances for dependency injection
type Repositories struct {
	SchoolRepository     *SchoolRepository
	UserRepository       *UserRepository
	StudentRepository    *StudentRepository
	ClassRepository      *ClassRepository
	SubjectRepository    *SubjectRepository
	ScheduleRepository   *ScheduleRepository
	GradeRepository      *GradeRepository
	AttendanceRepository *AttendanceRepository
	TokenRepository      *TokenRepository
}

// NewRepositories creates all repositories sharing one connection pool. The
// pool is owned by the composition root and passed down explicitly.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		SchoolRepository:     NewSchoolRepository(db),
		UserRepository:       NewUserRepository(db),
		StudentRepository:    NewStudentRepository(db),
		ClassRepository:      NewClassRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		ScheduleRepository:   NewScheduleRepository(db),
		GradeRepository:      NewGradeRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		TokenRepository:      NewTokenRepository(db),
	}
}
