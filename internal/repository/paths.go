package repository

import (
	"errors"
	"fmt"
	"strings"

	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/docstore"
)

const (
	teachersRoot = "teachers"
	batchesRoot  = "batches"
	resultsRoot  = "results"

	questionsNode = "questions"
	metaNode      = "meta"

	// placeholderKey marks filler entries that keep an empty batch or question
	// collection present in the store.
	placeholderKey = "_placeholder"
)

func teacherPath(name string) string {
	return docstore.Join(teachersRoot, docstore.Key(name))
}

func batchPath(batch string) string {
	return docstore.Join(batchesRoot, docstore.Key(batch))
}

func subjectPath(batch, subject string) string {
	return docstore.Join(batchPath(batch), docstore.Key(subject))
}

func questionsPath(batch, subject string) string {
	return docstore.Join(subjectPath(batch, subject), questionsNode)
}

func questionPath(batch, subject, id string) string {
	return docstore.Join(questionsPath(batch, subject), docstore.Key(id))
}

func batchResultsPath(batch string) string {
	return docstore.Join(resultsRoot, docstore.Key(batch))
}

func resultsPath(batch, subject string) string {
	return docstore.Join(batchResultsPath(batch), docstore.Key(subject))
}

func resultPath(batch, subject, student string) string {
	return docstore.Join(resultsPath(batch, subject), docstore.Key(student))
}

// isInternalKey reports keys the repositories write for bookkeeping.
func isInternalKey(key string) bool {
	return strings.HasPrefix(key, "_")
}

// storeErr maps backend failures onto the service error taxonomy.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, docstore.ErrInvalidPath) {
		return fmt.Errorf("%w: %s", util.ErrInvalidName, op)
	}
	return fmt.Errorf("%w: %s: %v", util.ErrStoreUnavailable, op, err)
}
