package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/course"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

var AllRoles = []string{RoleAdmin, RoleStudent}

type User struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Role            string       `json:"role"`
	EnrolledCourses []Enrollment `json:"enrolled_courses"`
}

// Normalize defaults the role to student and replaces missing sequences with empty ones.
func (u *User) Normalize() {
	if u.Role == "" {
		u.Role = RoleStudent
	}
	if u.EnrolledCourses == nil {
		u.EnrolledCourses = []Enrollment{}
	}
	for i := range u.EnrolledCourses {
		u.EnrolledCourses[i].Course.Normalize()
	}
}

func (u User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u User) IsStudent() bool { return u.Role != RoleAdmin }

// Enrollment returns the user's enrollment in courseID.
func (u User) Enrollment(courseID string) (Enrollment, bool) {
	for _, e := range u.EnrolledCourses {
		if e.Course.ID == courseID {
			return e, true
		}
	}
	return Enrollment{}, false
}

// Enrollment is the relationship between a student and a course.
type Enrollment struct {
	Course     course.Course `json:"course"`
	Completed  float64       `json:"completed"`  // percentage
	TimeSpent  int           `json:"time_spent"` // minutes
	EnrolledAt time.Time     `json:"enrolled_at"`
}

// CatalogEntry is a course as listed to a student.
type CatalogEntry struct {
	course.Course
	Enrolled bool `json:"enrolled"`
}

// Credentials are exchanged for a token.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanLower(c.Email)
	return validate.Struct(c)
}

// NewUser contains information needed to register a new student.
type NewUser struct {
	Name            string `json:"name" validate:"required,notblank"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanLower(nu.Email)
	return validate.Struct(nu)
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanLower(qf.Search)
}

// Match does a case-insensitive match of Search on User.Name or User.Email.
func (qf QueryFilter) Match(u User) bool {
	if qf.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Name), qf.Search) ||
		strings.Contains(strings.ToLower(u.Email), qf.Search)
}
