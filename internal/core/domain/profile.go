package domain

// Profile is the role-specific record attached one-to-one to a UserAccount.
// It is a closed union: exactly one concrete variant exists per role, and
// callers dispatch on Role() instead of switching over table names.
type Profile interface {
	Role() Role
	EntityID() string
	FullName() string
}

// DepartmentMember is implemented by the variants that carry a department
// affiliation (managers and employees).
type DepartmentMember interface {
	Profile
	Department() string
}

// AdminProfile has no scope restriction.
type AdminProfile struct {
	ID   string
	Name string
}

func (p AdminProfile) Role() Role       { return RoleAdmin }
func (p AdminProfile) EntityID() string { return p.ID }
func (p AdminProfile) FullName() string { return p.Name }

// ManagerProfile is scoped to its department.
type ManagerProfile struct {
	ID           string
	Name         string
	DepartmentID string
}

func (p ManagerProfile) Role() Role { return RoleManager }
func (p ManagerProfile) EntityID() string { return p.ID }
func (p ManagerProfile) FullName() string { return p.Name }
func (p ManagerProfile) Department() string { return p.DepartmentID }

// EmployeeProfile is scoped to itself; its department is stamped onto leave
// requests at submission time.
type EmployeeProfile struct {
	ID           string
	Name         string
	DepartmentID string
}

func (p EmployeeProfile) Role() Role { return RoleEmployee }
func (p EmployeeProfile) EntityID() string { return p.ID }
func (p EmployeeProfile) FullName() string { return p.Name }
func (p EmployeeProfile) Department() string { return p.DepartmentID }

// ClientProfile is scoped to itself.
type ClientProfile struct {
	ID   string
	Name string
}

func (p ClientProfile) Role() Role       { return RoleClient }
func (p ClientProfile) EntityID() string { return p.ID }
func (p ClientProfile) FullName() string { return p.Name }

// Scope is the subset of data an authenticated entity may read or mutate.
// For admins All is set; for managers DepartmentID is set; employees and
// clients are restricted to their own EntityID.
type Scope struct {
	Role         Role
	EntityID     string
	DepartmentID string
	All          bool
}
