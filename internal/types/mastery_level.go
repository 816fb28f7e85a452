package types

// MasteryLevel is the categorical label derived from an overall mastery score
// via fixed threshold bands (see masteryconf).
type MasteryLevel string

const (
	MasteryNovice     MasteryLevel = "novice"
	MasteryDeveloping MasteryLevel = "developing"
	MasteryProficient MasteryLevel = "proficient"
	MasteryAdvanced   MasteryLevel = "advanced"
	MasteryExpert     MasteryLevel = "expert"
)
