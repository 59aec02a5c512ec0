package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/testutil"
)

func TestQuestionOptionRepo_WithQuestionLock_UnknownQuestion(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewQuestionOptionRepo(db)

	called := false
	err := repo.WithQuestionLock(context.Background(), uuid.New(), func(tx repository.QuestionOptionTx) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.False(t, called)
}

func TestQuestionOptionRepo_ClearCorrect(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewQuestionOptionRepo(db)
	q := testutil.CreateQuestion(t, db)

	a := testutil.CreateOption(t, db, q.ID, "A", true)
	b := testutil.CreateOption(t, db, q.ID, "B", false)

	other := testutil.CreateQuestion(t, db)
	foreign := testutil.CreateOption(t, db, other.ID, "foreign", true)

	err := repo.WithQuestionLock(context.Background(), q.ID, func(tx repository.QuestionOptionTx) error {
		n, err := tx.ClearCorrect(q.ID, &b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n, "затрагиваются только правильные варианты")
		return nil
	})
	require.NoError(t, err)

	options, err := repo.ListByQuestion(context.Background(), q.ID)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, a.ID, options[0].ID)
	assert.False(t, options[0].IsCorrect)
	assert.Equal(t, "A", options[0].OptionText)

	// Варианты другого вопроса не затрагиваются
	var stored entity.QuestionOption
	require.NoError(t, db.First(&stored, "id = ?", foreign.ID).Error)
	assert.True(t, stored.IsCorrect)
}

func TestQuestionOptionRepo_ErrorRollsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewQuestionOptionRepo(db)
	q := testutil.CreateQuestion(t, db)
	a := testutil.CreateOption(t, db, q.ID, "A", true)

	boom := errors.New("boom")
	err := repo.WithQuestionLock(context.Background(), q.ID, func(tx repository.QuestionOptionTx) error {
		_, err := tx.ClearCorrect(q.ID, nil)
		require.NoError(t, err)
		require.NoError(t, tx.Create(&entity.QuestionOption{QuestionID: q.ID, OptionText: "B", IsCorrect: true}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	options, err := repo.ListByQuestion(context.Background(), q.ID)
	require.NoError(t, err)
	require.Len(t, options, 1, "вставка должна быть откатана")
	assert.Equal(t, a.ID, options[0].ID)
	assert.True(t, options[0].IsCorrect, "снятие отметки должно быть откатано")
}

func TestQuestionOptionRepo_TxUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewQuestionOptionRepo(db)
	q := testutil.CreateQuestion(t, db)
	a := testutil.CreateOption(t, db, q.ID, "A", true)

	var updated *entity.QuestionOption
	err := repo.WithQuestionLock(context.Background(), q.ID, func(tx repository.QuestionOptionTx) error {
		var err error
		updated, err = tx.Update(a.ID, map[string]interface{}{"is_correct": false, "option_text": "A2"})
		return err
	})
	require.NoError(t, err)
	assert.False(t, updated.IsCorrect)
	assert.Equal(t, "A2", updated.OptionText)

	err = repo.WithQuestionLock(context.Background(), q.ID, func(tx repository.QuestionOptionTx) error {
		_, err := tx.Update(uuid.New(), map[string]interface{}{"option_text": "x"})
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionOptionRepo_ListByQuestionIDs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewQuestionOptionRepo(db)
	q1 := testutil.CreateQuestion(t, db)
	q2 := testutil.CreateQuestion(t, db)
	testutil.CreateOption(t, db, q1.ID, "A", true)
	testutil.CreateOption(t, db, q1.ID, "B", false)
	testutil.CreateOption(t, db, q2.ID, "C", false)

	grouped, err := repo.ListByQuestionIDs(context.Background(), []uuid.UUID{q1.ID, q2.ID})
	require.NoError(t, err)
	assert.Len(t, grouped[q1.ID], 2)
	assert.Len(t, grouped[q2.ID], 1)

	empty, err := repo.ListByQuestionIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestQuestionOptionRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewQuestionOptionRepo(db)
	q := testutil.CreateQuestion(t, db)
	other := testutil.CreateQuestion(t, db)
	a := testutil.CreateOption(t, db, q.ID, "A", false)

	// Вариант чужого вопроса не удаляется
	err := repo.Delete(context.Background(), other.ID, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Delete(context.Background(), q.ID, a.ID))
	err = repo.Delete(context.Background(), q.ID, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionOptionRepo_CascadeOnQuestionDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewQuestionOptionRepo(db)
	questions := NewQuestionRepo(db)
	q := testutil.CreateQuestion(t, db)
	testutil.CreateOption(t, db, q.ID, "A", true)

	require.NoError(t, questions.Delete(context.Background(), q.ID))

	options, err := repo.ListByQuestion(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Empty(t, options)
}
