package adzuna

// Region is one national Adzuna endpoint.
type Region struct {
	Code  string `json:"value"`
	Label string `json:"label"`
}

// DefaultRegion is used when nothing else selects a region.
const DefaultRegion = "gb"

// Regions lists the countries Adzuna serves, in display order.
var Regions = []Region{
	{"gb", "United Kingdom"},
	{"us", "United States"},
	{"au", "Australia"},
	{"de", "Germany"},
	{"at", "Austria"},
	{"br", "Brazil"},
	{"in", "India"},
	{"nl", "Netherlands"},
	{"pl", "Poland"},
	{"ru", "Russia"},
	{"sg", "Singapore"},
	{"za", "South Africa"},
	{"mx", "Mexico"},
	{"fr", "France"},
	{"it", "Italy"},
	{"es", "Spain"},
	{"ch", "Switzerland"},
	{"ca", "Canada"},
	{"nz", "New Zealand"},
	{"ie", "Ireland"},
	{"be", "Belgium"},
	{"pt", "Portugal"},
	{"tr", "Turkey"},
}

// IsRegion reports whether code is one of Regions.
func IsRegion(code string) bool {
	for _, r := range Regions {
		if r.Code == code {
			return true
		}
	}
	return false
}
