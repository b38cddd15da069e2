package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"smartexam_backend/internal/model"
	"smartexam_backend/internal/repository"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *docstore.MemoryStore
	questions *repository.QuestionRepository
	results   *repository.ResultRepository
	catalog   *CatalogService
	attempts  *AttemptService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := docstore.NewMemoryStore()
	f := &fixture{
		store:     store,
		questions: repository.NewQuestionRepository(store),
		results:   repository.NewResultRepository(store),
	}
	f.catalog = NewCatalogService(repository.NewCatalogRepository(store), f.questions, f.results)
	f.attempts = f.newAttemptService(1)
	return f
}

// newAttemptService builds an independent instance over the same store, as a
// second server process would be.
func (f *fixture) newAttemptService(seed int64) *AttemptService {
	s := NewAttemptService(f.questions, f.results, repository.NewMemoryAttemptSessionRepository(time.Hour))
	return s.WithRand(rand.New(rand.NewSource(seed)))
}

func (f *fixture) subject(t *testing.T, batch, subject string, questions ...model.Question) []string {
	t.Helper()
	ctx := context.Background()
	if ok, _ := f.catalog.CatalogRepo.BatchExists(ctx, batch); !ok {
		_, err := f.catalog.CreateBatch(ctx, batch)
		require.NoError(t, err)
	}
	_, err := f.catalog.CreateSubject(ctx, batch, subject, "smith")
	require.NoError(t, err)

	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		added, err := f.questions.Add(ctx, batch, subject, q)
		require.NoError(t, err)
		ids = append(ids, added.ID)
	}
	return ids
}

func question(text, answer string) model.Question {
	return model.Question{Question: text, Options: []string{"A", "B", "C", "D"}, Answer: answer}
}

func viewOrder(v *model.AttemptView) []string {
	ids := make([]string, len(v.Questions))
	for i, q := range v.Questions {
		ids[i] = q.ID
	}
	return ids
}

var annPython = model.AttemptKey{StudentID: "ann", BatchID: "BCA", SubjectID: "Python"}

func TestEnterNotStarted(t *testing.T) {
	f := newFixture(t)
	f.subject(t, "BCA", "Python", question("q1", "A"))

	v, err := f.attempts.Enter(context.Background(), annPython)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptNotStarted, v.State)
	assert.Empty(t, v.Questions)
}

func TestStartShufflesWithInjectedSource(t *testing.T) {
	f := newFixture(t)
	ids := f.subject(t, "BCA", "Python",
		question("q1", "A"), question("q2", "B"), question("q3", "C"), question("q4", "D"), question("q5", "A"))

	f.attempts.WithRand(rand.New(rand.NewSource(42)))
	v, err := f.attempts.Start(context.Background(), annPython)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptInProgress, v.State)

	expected := append([]string(nil), ids...)
	sort.Strings(expected)
	rand.New(rand.NewSource(42)).Shuffle(len(expected), func(i, j int) {
		expected[i], expected[j] = expected[j], expected[i]
	})
	assert.Equal(t, expected, viewOrder(v))

	got := viewOrder(v)
	sort.Strings(got)
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	assert.Equal(t, sorted, got, "the order is a permutation of the bank")
}

func TestStartIsIdempotentWhileInProgress(t *testing.T) {
	f := newFixture(t)
	f.subject(t, "BCA", "Python", question("q1", "A"), question("q2", "B"), question("q3", "C"))
	ctx := context.Background()

	first, err := f.attempts.Start(ctx, annPython)
	require.NoError(t, err)
	_, err = f.attempts.Answer(ctx, annPython, first.Questions[0].ID, "B")
	require.NoError(t, err)

	// questions added after start stay out of the frozen snapshot
	_, err = f.questions.Add(ctx, "BCA", "Python", question("late", "D"))
	require.NoError(t, err)

	again, err := f.attempts.Start(ctx, annPython)
	require.NoError(t, err)
	assert.Equal(t, viewOrder(first), viewOrder(again))
	assert.Equal(t, map[string]string{first.Questions[0].ID: "B"}, again.Answers)

	entered, err := f.attempts.Enter(ctx, annPython)
	require.NoError(t, err)
	assert.Equal(t, again, entered)
}

func TestStartEmptyQuestionSet(t *testing.T) {
	f := newFixture(t)
	f.subject(t, "BCA", "Python")
	ctx := context.Background()

	_, err := f.attempts.Start(ctx, annPython)
	assert.ErrorIs(t, err, util.ErrEmptyQuestionSet)

	v, err := f.attempts.Enter(ctx, annPython)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptNotStarted, v.State)
}

func TestAnswerValidation(t *testing.T) {
	f := newFixture(t)
	f.subject(t, "BCA", "Python", question("q1", "A"))
	ctx := context.Background()

	_, err := f.attempts.Answer(ctx, annPython, "anything", "A")
	assert.ErrorIs(t, err, util.ErrAttemptNotStarted)

	v, err := f.attempts.Start(ctx, annPython)
	require.NoError(t, err)
	id := v.Questions[0].ID

	_, err = f.attempts.Answer(ctx, annPython, id, "E")
	assert.ErrorIs(t, err, util.ErrInvalidAnswerOption)
	_, err = f.attempts.Answer(ctx, annPython, "other", "A")
	assert.ErrorIs(t, err, util.ErrQuestionNotInAttempt)

	v, err = f.attempts.Enter(ctx, annPython)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptInProgress, v.State)
	assert.Empty(t, v.Answers, "rejected answers change nothing")

	v, err = f.attempts.Answer(ctx, annPython, id, "C")
	require.NoError(t, err)
	v, err = f.attempts.Answer(ctx, annPython, id, "A")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{id: "A"}, v.Answers)
}

func TestSubmitScoresThenBlocks(t *testing.T) {
	f := newFixture(t)
	ids := f.subject(t, "BCA", "Python", question("q1", "A"), question("q2", "B"))
	ctx := context.Background()

	_, err := f.attempts.Start(ctx, annPython)
	require.NoError(t, err)
	_, err = f.attempts.Answer(ctx, annPython, ids[0], "A")
	require.NoError(t, err)

	rec, err := f.attempts.Submit(ctx, annPython, map[string]string{ids[1]: "C"})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Score)
	assert.Equal(t, 2, rec.Total)
	assert.Len(t, rec.Details, 2)

	stored, err := f.results.Get(ctx, "BCA", "Python", "ann")
	require.NoError(t, err)
	assert.Equal(t, rec.Score, stored.Score)
	assert.Equal(t, rec.Details, stored.Details)

	v, err := f.attempts.Enter(ctx, annPython)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptBlocked, v.State)
	require.NotNil(t, v.Result)
	assert.Equal(t, 1, v.Result.Score)

	_, err = f.attempts.Start(ctx, annPython)
	assert.ErrorIs(t, err, util.ErrBlocked)

	var before, after json.RawMessage
	_, err = f.store.Get(ctx, "results/BCA/Python/ann", &before)
	require.NoError(t, err)

	_, err = f.attempts.Submit(ctx, annPython, map[string]string{ids[0]: "A", ids[1]: "B"})
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)
	_, err = f.attempts.Answer(ctx, annPython, ids[1], "B")
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)

	_, err = f.store.Get(ctx, "results/BCA/Python/ann", &after)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "the first result is never overwritten")
}

func TestSubmitWithoutAnswers(t *testing.T) {
	f := newFixture(t)
	f.subject(t, "BCA", "Python", question("q1", "A"), question("q2", "B"), question("q3", "C"))
	ctx := context.Background()

	_, err := f.attempts.Start(ctx, annPython)
	require.NoError(t, err)
	rec, err := f.attempts.Submit(ctx, annPython, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, rec.Score)
	assert.Equal(t, 3, rec.Total)
	for _, d := range rec.Details {
		assert.Equal(t, model.NoAnswer, d.YourAnswer)
		assert.False(t, d.IsCorrect)
	}
}

func TestSubmitRejectsInvalidFinalAnswers(t *testing.T) {
	f := newFixture(t)
	ids := f.subject(t, "BCA", "Python", question("q1", "A"))
	ctx := context.Background()

	_, err := f.attempts.Submit(ctx, annPython, nil)
	assert.ErrorIs(t, err, util.ErrAttemptNotStarted)

	_, err = f.attempts.Start(ctx, annPython)
	require.NoError(t, err)
	_, err = f.attempts.Submit(ctx, annPython, map[string]string{ids[0]: "Z"})
	assert.ErrorIs(t, err, util.ErrInvalidAnswerOption)

	ok, err := f.results.Exists(ctx, "BCA", "Python", "ann")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotIgnoresBankEdits(t *testing.T) {
	f := newFixture(t)
	ids := f.subject(t, "BCA", "Python", question("q1", "A"))
	ctx := context.Background()

	_, err := f.attempts.Start(ctx, annPython)
	require.NoError(t, err)

	_, err = f.questions.Update(ctx, "BCA", "Python", ids[0], question("q1 changed", "D"))
	require.NoError(t, err)

	rec, err := f.attempts.Submit(ctx, annPython, map[string]string{ids[0]: "A"})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Score)
	assert.Equal(t, "q1", rec.Details[0].Question)
	assert.Equal(t, "A", rec.Details[0].CorrectAnswer)
}

func TestConcurrentSubmitsStoreOneResult(t *testing.T) {
	f := newFixture(t)
	ids := f.subject(t, "BCA", "Python", question("q1", "A"), question("q2", "B"))
	ctx := context.Background()

	_, err := f.attempts.Start(ctx, annPython)
	require.NoError(t, err)

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.attempts.Submit(ctx, annPython, map[string]string{ids[0]: "A"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, util.ErrAlreadySubmitted):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, rejected)
}

func TestTwoInstancesShareOneResult(t *testing.T) {
	f := newFixture(t)
	ids := f.subject(t, "BCA", "Python", question("q1", "A"))
	ctx := context.Background()

	other := f.newAttemptService(2)
	_, err := f.attempts.Start(ctx, annPython)
	require.NoError(t, err)
	_, err = other.Start(ctx, annPython)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, s := range []*AttemptService{f.attempts, other} {
		wg.Add(1)
		go func(i int, s *AttemptService) {
			defer wg.Done()
			answer := "A"
			if i == 1 {
				answer = "B"
			}
			_, errs[i] = s.Submit(ctx, annPython, map[string]string{ids[0]: answer})
		}(i, s)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, util.ErrAlreadySubmitted)
		}
	}
	assert.Equal(t, 1, ok)

	keys, err := f.store.Keys(ctx, "results/BCA/Python")
	require.NoError(t, err)
	assert.Equal(t, []string{"ann"}, keys)
}

func TestAnswerRejectedOnceAnotherInstanceSubmitted(t *testing.T) {
	f := newFixture(t)
	ids := f.subject(t, "BCA", "Python", question("q1", "A"))
	ctx := context.Background()

	other := f.newAttemptService(2)
	_, err := f.attempts.Start(ctx, annPython)
	require.NoError(t, err)
	_, err = other.Start(ctx, annPython)
	require.NoError(t, err)

	_, err = f.attempts.Submit(ctx, annPython, map[string]string{ids[0]: "A"})
	require.NoError(t, err)

	// other still holds its session, but the result makes it terminal
	_, err = other.Answer(ctx, annPython, ids[0], "B")
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)
	_, err = f.attempts.Answer(ctx, annPython, ids[0], "B")
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)

	v, err := other.Enter(ctx, annPython)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptBlocked, v.State)
	assert.Equal(t, "A", v.Result.Details[0].YourAnswer)
}

func TestRetakeAfterReset(t *testing.T) {
	f := newFixture(t)
	f.subject(t, "BCA", "Python", question("q1", "A"))
	ctx := context.Background()

	_, err := f.attempts.Start(ctx, annPython)
	require.NoError(t, err)
	_, err = f.attempts.Submit(ctx, annPython, nil)
	require.NoError(t, err)

	n, err := f.results.DeleteAll(ctx, "BCA", "Python")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	v, err := f.attempts.Enter(ctx, annPython)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptNotStarted, v.State)

	_, err = f.attempts.Start(ctx, annPython)
	assert.NoError(t, err)
}

func TestAttemptKeyIsSanitized(t *testing.T) {
	f := newFixture(t)
	f.subject(t, "BCA_2025", "Python", question("q1", "A"))
	ctx := context.Background()

	raw := model.AttemptKey{StudentID: "ann.lee", BatchID: "BCA/2025", SubjectID: "Python"}
	started, err := f.attempts.Start(ctx, raw)
	require.NoError(t, err)

	clean := model.AttemptKey{StudentID: "ann_lee", BatchID: "BCA_2025", SubjectID: "Python"}
	v, err := f.attempts.Enter(ctx, clean)
	require.NoError(t, err)
	assert.Equal(t, started, v)

	_, err = f.attempts.Enter(ctx, model.AttemptKey{StudentID: " ", BatchID: "BCA", SubjectID: "Python"})
	assert.ErrorIs(t, err, util.ErrInvalidName)
}
