package domain

// Field names one of the free-text search constraints
type Field int

const (
	FieldKeyword Field = iota
	FieldLocation
	FieldCompany
)

// Fields lists every filter field in display order
var Fields = []Field{FieldKeyword, FieldLocation, FieldCompany}

// String returns the query parameter name for the field
func (f Field) String() string {
	switch f {
	case FieldKeyword:
		return "keyword"
	case FieldLocation:
		return "location"
	case FieldCompany:
		return "company"
	default:
		return ""
	}
}

// Valid reports whether f is one of the known filter fields
func (f Field) Valid() bool {
	return f >= FieldKeyword && f <= FieldCompany
}

// Filter is the set of search constraints applied to the job listing query.
// An empty field means "no constraint".
type Filter struct {
	Keyword  string `json:"keyword" toml:"keyword"`
	Location string `json:"location" toml:"location"`
	Company  string `json:"company" toml:"company"`
}

// Equal compares two filters field by field
func (f Filter) Equal(other Filter) bool {
	return f.Keyword == other.Keyword &&
		f.Location == other.Location &&
		f.Company == other.Company
}

// Get returns the value of a single field
func (f Filter) Get(field Field) string {
	switch field {
	case FieldKeyword:
		return f.Keyword
	case FieldLocation:
		return f.Location
	case FieldCompany:
		return f.Company
	default:
		return ""
	}
}

// With returns a copy of the filter with one field replaced
func (f Filter) With(field Field, value string) Filter {
	switch field {
	case FieldKeyword:
		f.Keyword = value
	case FieldLocation:
		f.Location = value
	case FieldCompany:
		f.Company = value
	}
	return f
}

// IsEmpty reports whether no constraint is set
func (f Filter) IsEmpty() bool {
	return f.Keyword == "" && f.Location == "" && f.Company == ""
}

// JobPosting is a scraped job listing as served by the backend.
// Values are only ever produced by decoding a server response.
type JobPosting struct {
	ID          int64  `json:"id"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Salary      string `json:"salary,omitempty"`
	JobURL      string `json:"jobUrl"`
	CompanyLogo string `json:"companyLogo,omitempty"`
	AgoTime     string `json:"agoTime,omitempty"`
	Keyword     string `json:"keyword,omitempty"`
}

// PageEnvelope is the paginated response wrapper of GET /jobs
type PageEnvelope struct {
	Data        []JobPosting `json:"data"`
	CurrentPage int          `json:"current_page"`
	LastPage    int          `json:"last_page"`
	Total       int          `json:"total"`
}

// Normalize fills in the values a partial envelope leaves out
func (e PageEnvelope) Normalize() PageEnvelope {
	if e.Data == nil {
		e.Data = []JobPosting{}
	}
	if e.CurrentPage < 1 {
		e.CurrentPage = 1
	}
	if e.LastPage < 1 {
		e.LastPage = 1
	}
	if e.Total < 0 {
		e.Total = 0
	}
	return e
}
