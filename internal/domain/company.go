package domain

// Employee and revenue ranges are fixed ordinal sets; anything the
// enricher cannot resolve stays "Unknown".
const Unknown = "Unknown"

var EmployeeRanges = []string{"<10", "10-50", "50-500", "500-5000", "5000-20000", ">20000"}

var RevenueRanges = []string{"<5M", "5M-50M", "50M-500M", "500M-1B", ">1B"}

// CompanyProfile is the enrichment result for one company.
type CompanyProfile struct {
	HQCountry string `json:"hq_country"`
	Employees string `json:"employees"`
	Revenue   string `json:"revenue"`
}

// UnknownProfile is the conservative default when every resolution
// branch comes up empty.
func UnknownProfile() CompanyProfile {
	return CompanyProfile{HQCountry: Unknown, Employees: Unknown, Revenue: Unknown}
}
