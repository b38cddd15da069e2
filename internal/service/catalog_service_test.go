package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"smartexam_backend/internal/config"
	"smartexam_backend/internal/model"
	"smartexam_backend/internal/repository"
	"smartexam_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCreateAndOverview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	name, err := f.catalog.CreateBatch(ctx, " BCA.2025 ")
	require.NoError(t, err)
	assert.Equal(t, "BCA_2025", name)

	_, err = f.catalog.CreateBatch(ctx, "_internal")
	assert.ErrorIs(t, err, util.ErrInvalidName)
	_, err = f.catalog.CreateSubject(ctx, "missing", "Python", "smith")
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = f.catalog.CreateSubject(ctx, "BCA_2025", "Python", "smith")
	require.NoError(t, err)
	_, err = f.catalog.CreateSubject(ctx, "BCA_2025", "Python", "jones")
	assert.ErrorIs(t, err, util.ErrAlreadyExists)

	_, err = f.questions.Add(ctx, "BCA_2025", "Python", question("q1", "A"))
	require.NoError(t, err)
	require.NoError(t, f.results.CreateIfAbsent(ctx, &model.ResultRecord{StudentID: "ann", BatchID: "BCA_2025", SubjectID: "Python", Total: 1}))

	overview, err := f.catalog.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, overview, 1)
	assert.Equal(t, "BCA_2025", overview[0].Name)
	require.Len(t, overview[0].Subjects, 1)
	sub := overview[0].Subjects[0]
	assert.Equal(t, "Python", sub.Name)
	assert.Equal(t, "smith", sub.Teacher)
	assert.Equal(t, 1, sub.QuestionCount)
	assert.Equal(t, 1, sub.ResultCount)
}

func TestCatalogDeleteSubjectRemovesResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.subject(t, "BCA", "Python", question("q1", "A"))
	f.subject(t, "BCA", "Java", question("q1", "A"))
	for _, subject := range []string{"Python", "Java"} {
		require.NoError(t, f.results.CreateIfAbsent(ctx, &model.ResultRecord{StudentID: "ann", BatchID: "BCA", SubjectID: subject}))
	}

	require.NoError(t, f.catalog.DeleteSubject(ctx, "BCA", "Python"))
	assert.ErrorIs(t, f.catalog.DeleteSubject(ctx, "BCA", "Python"), util.ErrNotFound)

	subjects, err := f.catalog.ListSubjects(ctx, "BCA")
	require.NoError(t, err)
	assert.Equal(t, []string{"Java"}, subjects)

	ok, err := f.results.Exists(ctx, "BCA", "Python", "ann")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.catalog.DeleteBatch(ctx, "BCA"))
	batches, err := f.catalog.ListBatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, batches)
	ok, err = f.results.Exists(ctx, "BCA", "Java", "ann")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQuestionServiceRequiresSubject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewQuestionService(f.questions, f.catalog)

	_, err := svc.Add(ctx, "BCA", "Python", question("q1", "A"))
	assert.ErrorIs(t, err, util.ErrNotFound)

	f.subject(t, "BCA", "Python")
	added, err := svc.Add(ctx, "BCA", "Python", question("q1", "A"))
	require.NoError(t, err)

	bad := question("q2", "E")
	_, err = svc.Add(ctx, "BCA", "Python", bad)
	assert.ErrorIs(t, err, util.ErrInvalidQuestion)

	list, err := svc.List(ctx, "BCA", "Python")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Answer)

	_, err = svc.Update(ctx, "BCA", "Python", added.ID, question("q1 edited", "C"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "BCA", "Python", added.ID))

	list, err = svc.List(ctx, "BCA", "Python")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestResultServiceListResetExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.subject(t, "BCA", "Python", question("q1", "A"))

	submitted := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	for _, r := range []model.ResultRecord{
		{StudentID: "zoe", BatchID: "BCA", SubjectID: "Python", Score: 1, Total: 2, SubmittedAt: submitted},
		{StudentID: "ann", BatchID: "BCA", SubjectID: "Python", Score: 2, Total: 2, SubmittedAt: submitted},
	} {
		r := r
		require.NoError(t, f.results.CreateIfAbsent(ctx, &r))
	}

	dir := t.TempDir()
	exports := NewExportStorage(&config.ExportConfig{Type: util.StorageLocal, LocalPath: dir})
	svc := NewResultService(f.results, f.catalog, exports)

	list, err := svc.List(ctx, "BCA", "Python")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ann", list[0].StudentID)

	url, err := svc.Export(ctx, "BCA", "Python")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/exports/results/BCA_Python_"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "/exports/"))))
	require.NoError(t, err)
	assert.Equal(t,
		"student,score,total,percent,submitted_at\n"+
			"ann,2,2,100.0,2025-05-06 07:08:09\n"+
			"zoe,1,2,50.0,2025-05-06 07:08:09\n",
		string(data))

	n, err := svc.Reset(ctx, "BCA", "Python")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err = svc.List(ctx, "BCA", "Python")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Reset(ctx, "BCA", "Missing")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestTeacherAccountsAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teachers := repository.NewTeacherRepository(f.store)
	svc := NewTeacherService(teachers)
	cfg := &config.Config{
		JWT:   config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Admin: config.AdminConfig{Password: "admin-pass"},
	}
	auth := NewAuthService(teachers, cfg)

	_, err := svc.Create(ctx, "smith", "")
	assert.ErrorIs(t, err, util.ErrInvalidPassword)
	info, err := svc.Create(ctx, "smith", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "smith", info.Name)
	_, err = svc.Create(ctx, "smith", "other")
	assert.ErrorIs(t, err, util.ErrAlreadyExists)

	stored, err := teachers.FindByName(ctx, "smith")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.Password, "passwords are stored hashed")

	tok, err := auth.TeacherLogin(ctx, "smith", "s3cret")
	require.NoError(t, err)
	claims, err := util.ParseJWT(tok.Token, cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, "smith", claims.Name)
	assert.Equal(t, model.Teacher, claims.Role)

	_, err = auth.TeacherLogin(ctx, "smith", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, err = auth.TeacherLogin(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	require.NoError(t, svc.ResetPassword(ctx, "smith", "n3w"))
	_, err = auth.TeacherLogin(ctx, "smith", "n3w")
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"smith"}, []string{list[0].Name})

	require.NoError(t, svc.Delete(ctx, "smith"))
	assert.ErrorIs(t, svc.Delete(ctx, "smith"), util.ErrNotFound)

	admin, err := auth.AdminLogin("admin-pass")
	require.NoError(t, err)
	assert.Equal(t, model.Admin, admin.Role)
	_, err = auth.AdminLogin("nope")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	student, err := auth.StudentLogin(" ann ")
	require.NoError(t, err)
	assert.Equal(t, "ann", student.Name)
	assert.Equal(t, model.Student, student.Role)
	_, err = auth.StudentLogin("")
	assert.ErrorIs(t, err, util.ErrInvalidName)
}
