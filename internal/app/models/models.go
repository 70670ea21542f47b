package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent   RoleType = "STUDENT"
	RoleProfessor RoleType = "PROFESSOR"
	RoleAdmin     RoleType = "ADMIN"
)

// IsValid reports whether the role is one of the known roles.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleAdmin:
		return true
	}
	return false
}

// Vote category identifiers. mejor_curso options are generated from the
// current course catalog; the other categories carry fixed options.
const (
	CategoryBestCourse        = "mejor_curso"
	CategoryBestProfessor     = "mejor_profesor"
	CategoryGeneralExperience = "experiencia_general"
)
