package model

// swagger:model ProblemSet
type ProblemSet struct {
	BaseModel
	OwnerUserID uint `gorm:"index" json:"ownerUserId"`
}

func (ProblemSet) TableName() string {
	return "problem_sets"
}

// ProblemSetVersion is an immutable snapshot of a set's questions. Edits
// append version N+1 and never touch version N, so historical exam attempts
// stay resolvable. The unique index on (problem_set_id, version) is what
// serializes concurrent edits: a lost race surfaces as a duplicate-key error
// and the writer retries with a fresh max.
//
// swagger:model ProblemSetVersion
type ProblemSetVersion struct {
	BaseModel
	ProblemSetID     uint       `gorm:"uniqueIndex:idx_set_version;not null" json:"problemSetId"`
	Version          int        `gorm:"uniqueIndex:idx_set_version;not null" json:"version"`
	TimeLimitMinutes *int       `json:"timeLimitMinutes,omitempty"`
	Questions        []Question `gorm:"foreignKey:VersionID" json:"questions,omitempty"`
}

func (ProblemSetVersion) TableName() string {
	return "problem_set_versions"
}

// swagger:model Question
type Question struct {
	BaseModel
	VersionID    uint     `gorm:"index" json:"versionId"`
	Text         string   `gorm:"type:text" json:"text"`
	Explanation  string   `gorm:"type:text" json:"explanation,omitempty"`
	DisplayOrder int      `json:"displayOrder"`
	Choices      []Choice `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Choice
type Choice struct {
	BaseModel
	QuestionID uint   `gorm:"index" json:"questionId"`
	Text       string `gorm:"type:text" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect,omitempty"`
}

func (Choice) TableName() string {
	return "choices"
}
