package model

import "time"

// SubjectMeta is stored at /batches/{batch}/{subject}/meta.
type SubjectMeta struct {
	Teacher   string    `json:"teacher"`
	CreatedAt time.Time `json:"createdAt"`
}

type BatchOverview struct {
	Name     string            `json:"name"`
	Subjects []SubjectOverview `json:"subjects"`
}

type SubjectOverview struct {
	Name          string    `json:"name"`
	Teacher       string    `json:"teacher,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	QuestionCount int       `json:"questionCount"`
	ResultCount   int       `json:"resultCount"`
}
