package model

import "time"

type AttemptState string

const (
	AttemptNotStarted AttemptState = "not_started"
	AttemptInProgress AttemptState = "in_progress"
	AttemptSubmitted  AttemptState = "submitted"
	// AttemptBlocked is reached on entry when a result already exists.
	AttemptBlocked AttemptState = "blocked"
)

// NoAnswer is the chosen answer recorded for an unanswered question.
const NoAnswer = ""

type AttemptKey struct {
	StudentID string `json:"studentId"`
	BatchID   string `json:"batchId"`
	SubjectID string `json:"subjectId"`
}

func (k AttemptKey) String() string {
	return k.StudentID + "|" + k.BatchID + "|" + k.SubjectID
}

// Attempt is the session state of one student's exam. Order and Questions
// are frozen when the attempt starts; later edits to the question bank do not
// reach them.
type Attempt struct {
	AttemptKey
	State     AttemptState        `json:"state"`
	Order     []string            `json:"order"`
	Questions map[string]Question `json:"questions"`
	Answers   map[string]string   `json:"answers"`
	StartedAt time.Time           `json:"startedAt"`
}

// Grade scores the attempt in frozen order. Missing answers count as wrong.
func (a *Attempt) Grade(submittedAt time.Time) ResultRecord {
	rec := ResultRecord{
		StudentID:   a.StudentID,
		BatchID:     a.BatchID,
		SubjectID:   a.SubjectID,
		Total:       len(a.Order),
		Details:     make([]ResultDetail, 0, len(a.Order)),
		SubmittedAt: submittedAt,
	}
	for _, id := range a.Order {
		q := a.Questions[id]
		chosen, ok := a.Answers[id]
		if !ok {
			chosen = NoAnswer
		}
		correct := chosen != NoAnswer && chosen == q.Answer
		if correct {
			rec.Score++
		}
		rec.Details = append(rec.Details, ResultDetail{
			QuestionID:    id,
			Question:      q.Question,
			YourAnswer:    chosen,
			CorrectAnswer: q.Answer,
			IsCorrect:     correct,
		})
	}
	return rec
}

// AttemptView is what the student screen renders for the current state.
type AttemptView struct {
	State     AttemptState      `json:"state"`
	BatchID   string            `json:"batchId"`
	SubjectID string            `json:"subjectId"`
	Questions []StudentQuestion `json:"questions,omitempty"`
	Answers   map[string]string `json:"answers,omitempty"`
	StartedAt *time.Time        `json:"startedAt,omitempty"`
	Result    *ResultRecord     `json:"result,omitempty"`
}

func (a *Attempt) View() *AttemptView {
	v := &AttemptView{
		State:     a.State,
		BatchID:   a.BatchID,
		SubjectID: a.SubjectID,
		Questions: make([]StudentQuestion, 0, len(a.Order)),
		Answers:   make(map[string]string, len(a.Answers)),
	}
	for _, id := range a.Order {
		v.Questions = append(v.Questions, a.Questions[id].ForStudent())
	}
	for id, ans := range a.Answers {
		v.Answers[id] = ans
	}
	started := a.StartedAt
	v.StartedAt = &started
	return v
}
