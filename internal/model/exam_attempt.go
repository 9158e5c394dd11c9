package model

import "time"

// ExamAttempt pins the exact ProblemSetVersion that was answered. Created
// once per submission, never mutated.
//
// swagger:model ExamAttempt
type ExamAttempt struct {
	BaseModel
	UserID              uint         `gorm:"index" json:"userId"`
	ProblemSetVersionID uint         `gorm:"index" json:"problemSetVersionId"`
	Score               int          `json:"score"`
	TotalQuestions      int          `json:"totalQuestions"`
	CompletedAt         time.Time    `json:"completedAt"`
	Answers             []UserAnswer `gorm:"foreignKey:ExamAttemptID" json:"answers,omitempty"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

// UserAnswer records one answered question. Unanswered questions get no row.
//
// swagger:model UserAnswer
type UserAnswer struct {
	BaseModel
	ExamAttemptID    uint `gorm:"index" json:"examAttemptId"`
	QuestionID       uint `json:"questionId"`
	SelectedChoiceID uint `json:"selectedChoiceId"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
