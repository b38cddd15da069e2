package model

import "time"

// ResultRecord is stored once per student at /results/{batch}/{subject}/{student}
// and never modified afterwards.
type ResultRecord struct {
	StudentID   string         `json:"studentId"`
	BatchID     string         `json:"batchId"`
	SubjectID   string         `json:"subjectId"`
	Score       int            `json:"score"`
	Total       int            `json:"total"`
	Details     []ResultDetail `json:"details"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

type ResultDetail struct {
	QuestionID    string `json:"questionId"`
	Question      string `json:"question"`
	YourAnswer    string `json:"yourAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// ResultSummary is one row of a subject's result table.
type ResultSummary struct {
	StudentID   string    `json:"studentId"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func (r ResultRecord) Summary() ResultSummary {
	return ResultSummary{StudentID: r.StudentID, Score: r.Score, Total: r.Total, SubmittedAt: r.SubmittedAt}
}
