package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduspark/eduspark/core"
)

// Roles
const (
	// Admin
	RoleAdmin      = "admin:"
	RoleAdminSuper = "admin:super"

	// Teacher
	RoleTeacher = "teacher:"

	// Student
	RoleStudent = "student:"

	// Staff (non-teaching employees)
	RoleStaff = "staff:"
)

// User types exposed to the session layer and the `user_type` cookie.
const (
	TypeSuperAdmin = "superadmin"
	TypeAdmin      = "admin"
	TypeTeacher    = "teacher"
	TypeStudent    = "student"
	TypeStaff      = "staff"
)

// Account statuses
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

var (
	AdminRoles   = []string{RoleAdmin, RoleAdminSuper}
	TeacherRoles = []string{RoleTeacher}
	StudentRoles = []string{RoleStudent}
	StaffRoles   = []string{RoleStaff}
	AllRoles     = getAllRoles()

	rolePriorities = map[string]int{
		// Admins: 30 - 21
		RoleAdminSuper: 30,
		RoleAdmin:      21,

		// Teachers: 20 - 11
		RoleTeacher: 11,

		// Staff & Students: 10 - 1
		RoleStaff:   2,
		RoleStudent: 1,
	}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Staff", Value: RoleStaff},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Super Admin", Value: RoleAdminSuper},
	}
)

func getAllRoles() []string {
	all := make([]string, 0, 5)
	all = append(all, AdminRoles...)
	all = append(all, TeacherRoles...)
	all = append(all, StudentRoles...)
	all = append(all, StaffRoles...)
	return all
}

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID                 string      `json:"id"`
	FirstName          string      `json:"first_name"`
	LastName           string      `json:"last_name"`
	Username           string      `json:"username"`
	Email              string      `json:"email"`
	PrimaryPhoneNumber null.String `json:"primary_phone_number"`
	IsActive           *bool       `json:"is_active"`
	Roles              []string    `json:"roles"`
	PasswordHash       []byte      `json:"-"`
	CreatedAt          time.Time   `json:"created_at"` // UTC
	UpdatedAt          time.Time   `json:"updated_at"` // UTC
	LastLogin          time.Time   `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) SetActive(active bool) {
	u.IsActive = &active
}

func (u *User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool      { return u.RoleStartsWith(RoleAdmin) }
func (u *User) IsSuperAdmin() bool { return u.HasRole(RoleAdminSuper) }
func (u *User) IsTeacher() bool    { return u.RoleStartsWith(RoleTeacher) }
func (u *User) IsStudent() bool    { return u.RoleStartsWith(RoleStudent) }
func (u *User) IsStaff() bool      { return u.RoleStartsWith(RoleStaff) }

// Type reports the highest-priority role family; it is the value written
// to the `user_type` cookie and checked by the route guard.
func (u *User) Type() string {
	switch {
	case u.IsSuperAdmin():
		return TypeSuperAdmin
	case u.IsAdmin():
		return TypeAdmin
	case u.IsTeacher():
		return TypeTeacher
	case u.IsStaff():
		return TypeStaff
	default:
		return TypeStudent
	}
}

func (u *User) Status() string {
	if u.IsActive != nil && !*u.IsActive {
		return StatusDisabled
	}
	return StatusActive
}

// Profile is the session-facing view of a User returned by `GET /user`.
type Profile struct {
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Email              string `json:"email"`
	PrimaryPhoneNumber string `json:"primary_phone_number,omitempty"`
	Status             string `json:"status"`
	UserType           string `json:"user_type"`
	AccessToken        string `json:"access_token"`
}

func (u *User) ProfileWithToken(token string) Profile {
	return Profile{
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Email:              u.Email,
		PrimaryPhoneNumber: u.PrimaryPhoneNumber.String,
		Status:             u.Status(),
		UserType:           u.Type(),
		AccessToken:        token,
	}
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	FirstName          string   `json:"first_name" validate:"required"`
	LastName           string   `json:"last_name" validate:"required"`
	Username           string   `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email              string   `json:"email" validate:"omitempty,email"`
	PrimaryPhoneNumber string   `json:"primary_phone_number" validate:"omitempty,phone_"`
	Password           string   `json:"password" validate:"required"`
	PasswordConfirm    string   `json:"password_confirm" validate:"required,eqfield=Password"`
	Roles              []string `json:"roles" validate:"omitempty,allroles"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc Service) error {
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username, nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	Username           string   `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email              string   `json:"email" validate:"omitempty,email"`
	PrimaryPhoneNumber string   `json:"primary_phone_number" validate:"omitempty,phone_"`
	IsActive           *bool    `json:"is_active"`
	Roles              []string `json:"roles" validate:"omitempty,allroles"`
	Password           string   `json:"password" validate:"omitempty"`
	PasswordConfirm    string   `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate, svc Service) error {
	if first := core.CleanString(uu.FirstName); first != "" {
		uu.FirstName = first
	} else {
		uu.FirstName = origUsr.FirstName
	}

	if last := core.CleanString(uu.LastName); last != "" {
		uu.LastName = last
	} else {
		uu.LastName = origUsr.LastName
	}

	if uname := core.CleanString(uu.Username, true /* lower */); uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}

	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(uu.Username, uu.Email, origUsr)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate(validate *validator.Validate) error {
	return validate.Struct(rp)
}

type QueryFilter struct {
	Search      string    `query:"search"`
	Roles       []string  `query:"role"`
	IsActive    *bool     `query:"is_active"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.IsActive == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
