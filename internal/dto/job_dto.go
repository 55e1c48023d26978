package dto

// JobRequest carries the employer-supplied fields for creating or editing a
// job. Length bounds are enforced at the HTTP boundary, not in the services.
type JobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Company     string `json:"company"`
}

// JobFilter composes case-insensitive substring matches with AND. Empty
// fields are ignored.
type JobFilter struct {
	Location string `query:"location"`
	Category string `query:"category"`
	Company  string `query:"company"`
}

// JobSummary is the machine-readable search result shape.
type JobSummary struct {
	ID             uint    `json:"id"`
	Title          string  `json:"title"`
	Company        string  `json:"company"`
	Location       string  `json:"location"`
	Category       string  `json:"category"`
	Salary         string  `json:"salary,omitempty"`
	CompanyLogoURL *string `json:"company_logo_url"`
	PostedDate     string  `json:"posted_date"`
}

type SearchJobsResponse struct {
	Jobs []JobSummary `json:"jobs"`
}
