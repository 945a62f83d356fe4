package domain

// IssueCategory names one bucket of validation findings.
type IssueCategory string

const (
	IssueUValueTooHigh    IssueCategory = "u_value_too_high"
	IssueMissingMaterials IssueCategory = "missing_materials"
	IssueNamingConvention IssueCategory = "naming_convention"
	IssuePassivhausReady  IssueCategory = "passivhaus_ready"
)

// IssueCategories lists every category in report order.
var IssueCategories = []IssueCategory{
	IssueUValueTooHigh,
	IssueMissingMaterials,
	IssueNamingConvention,
	IssuePassivhausReady,
}

// Issues maps each category to its human-readable findings. All four
// categories are always present.
type Issues map[IssueCategory][]string

func NewIssues() Issues {
	out := make(Issues, len(IssueCategories))
	for _, c := range IssueCategories {
		out[c] = []string{}
	}
	return out
}

func (i Issues) Add(c IssueCategory, msg string) {
	i[c] = append(i[c], msg)
}

func (i Issues) Total() int {
	n := 0
	for _, msgs := range i {
		n += len(msgs)
	}
	return n
}
