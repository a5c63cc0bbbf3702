package services

import (
	"strings"

	"nagarseva-be/models"
)

// keywordRule maps a curated keyword set to an issue type. Rules are checked
// in order; the first match wins.
type keywordRule struct {
	issueType models.IssueType
	keywords  []string
}

var fallbackRules = []keywordRule{
	{models.IssuePothole, []string{"pothole", "pot hole", "road damage", "damaged road", "broken road", "crater"}},
	{models.IssueGarbage, []string{"garbage", "trash", "waste", "litter", "rubbish", "dump"}},
	{models.IssueStreetlight, []string{"streetlight", "street light", "street lamp", "light not working", "dark street"}},
	{models.IssueWaterLeakage, []string{"water leak", "leakage", "pipe burst", "burst pipe", "water logging", "drainage"}},
	{models.IssueDirtyToilet, []string{"toilet", "urinal", "sanitation", "unhygienic", "filthy"}},
}

// ClassifyDescription infers an issue type from free text by case-insensitive
// substring matching. Returns IssueOther when nothing matches.
func ClassifyDescription(description string) models.IssueType {
	text := strings.ToLower(description)
	for _, rule := range fallbackRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.issueType
			}
		}
	}
	return models.IssueOther
}
