package models

// JobSearchQuery is the query string of GET /jobs after conversion from text.
// minSalary is parsed to an integer and hasEquity is true only for the
// literal "true".
type JobSearchQuery struct {
	Title     *string
	MinSalary *int `validate:"omitempty,min=0"`
	HasEquity *bool
}

// Filter converts the query into repository filters
func (q JobSearchQuery) Filter() JobFilter {
	return JobFilter{
		Title:     q.Title,
		MinSalary: q.MinSalary,
		HasEquity: q.HasEquity,
	}
}
