package services

import "nagarseva-be/models"

// GeneralAdministration handles everything no specialized department owns.
const GeneralAdministration = "General Administration"

var departmentByIssueType = map[models.IssueType]string{
	models.IssuePothole:      "Roads & Highway Dept",
	models.IssueGarbage:      "Solid Waste Management Dept",
	models.IssueStreetlight:  "Electricity Dept",
	models.IssueWaterLeakage: "Water Supply Dept",
	models.IssueDirtyToilet:  "Sanitation Dept",
	models.IssueOther:        GeneralAdministration,
}

// DepartmentFor maps an issue type to its responsible department. Total over
// the enum; anything unexpected falls back to general administration.
func DepartmentFor(issueType models.IssueType) string {
	if dept, ok := departmentByIssueType[issueType]; ok {
		return dept
	}
	return GeneralAdministration
}
