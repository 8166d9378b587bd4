package analyzer

// AvailableRoles is the fixed set of target roles offered to applicants.
var AvailableRoles = []string{
	"Software Engineer",
	"Data Scientist",
	"Product Manager",
	"UX Designer",
	"Marketing Manager",
	"Business Analyst",
}
