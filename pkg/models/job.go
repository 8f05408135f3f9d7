package models

// Job represents a job posting owned by a company
type Job struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Salary        *int    `json:"salary"`
	Equity        *string `json:"equity"` // fixed-point text in [0,1]
	CompanyHandle string  `json:"companyHandle"`
}

// JobListing is a job as returned by searches, carrying its company's name
type JobListing struct {
	Job
	CompanyName string `json:"companyName"`
}

// JobDetail is a single job with its company expanded in place of the handle
type JobDetail struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Salary  *int     `json:"salary"`
	Equity  *string  `json:"equity"`
	Company *Company `json:"company"`
}

// Company is the employer a job belongs to
type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// NewJob holds the fields needed to create a job
type NewJob struct {
	Title         string  `json:"title" validate:"required"`
	Salary        *int    `json:"salary" validate:"omitempty,min=0"`
	Equity        *string `json:"equity" validate:"omitempty,equity"`
	CompanyHandle string  `json:"companyHandle" validate:"required"`
}

// JobUpdate is a partial update; only fields that are Set are written
type JobUpdate struct {
	Title  Nullable[string] `json:"title" validate:"omitempty,min=1"`
	Salary Nullable[int]    `json:"salary" validate:"omitempty,min=0"`
	Equity Nullable[string] `json:"equity" validate:"omitempty,equity"`
}

// IsEmpty reports whether the update carries no fields at all
func (u JobUpdate) IsEmpty() bool {
	return !u.Title.Set && !u.Salary.Set && !u.Equity.Set
}

// JobFilter narrows FindAll. Nil fields impose no condition.
type JobFilter struct {
	Title     *string
	MinSalary *int
	HasEquity *bool
}
