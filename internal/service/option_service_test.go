package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/repository/postgres"
	"github.com/yourusername/quiz-api/internal/testutil"
)

func newTestOptionService(t *testing.T) (*OptionService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewOptionService(postgres.NewQuestionOptionRepo(db), postgres.NewQuestionRepo(db)), db
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool     { return &b }

func loadOptions(t *testing.T, db *gorm.DB, questionID uuid.UUID) map[uuid.UUID]entity.QuestionOption {
	t.Helper()
	var options []entity.QuestionOption
	require.NoError(t, db.Where("question_id = ?", questionID).Find(&options).Error)
	byID := make(map[uuid.UUID]entity.QuestionOption, len(options))
	for _, o := range options {
		byID[o.ID] = o
	}
	return byID
}

func countCorrect(t *testing.T, db *gorm.DB, questionID uuid.UUID) int {
	t.Helper()
	var options []entity.QuestionOption
	require.NoError(t, db.Where("question_id = ?", questionID).Find(&options).Error)
	return entity.CountCorrect(options)
}

func TestOptionService_Create(t *testing.T) {
	svc, db := newTestOptionService(t)
	q := testutil.CreateQuestion(t, db)
	ctx := context.Background()

	first, err := svc.SetOption(ctx, SetOptionInput{QuestionID: q.ID, Text: strPtr("A"), IsCorrect: boolPtr(true)})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.True(t, first.IsCorrect)
	assert.False(t, first.CreatedAt.IsZero())

	// Новый правильный вариант снимает отметку с предыдущего
	second, err := svc.SetOption(ctx, SetOptionInput{QuestionID: q.ID, Text: strPtr("B"), IsCorrect: boolPtr(true)})
	require.NoError(t, err)

	options := loadOptions(t, db, q.ID)
	assert.False(t, options[first.ID].IsCorrect)
	assert.True(t, options[second.ID].IsCorrect)

	// Неправильный вариант ничего не снимает
	third, err := svc.SetOption(ctx, SetOptionInput{QuestionID: q.ID, Text: strPtr("C")})
	require.NoError(t, err)
	assert.False(t, third.IsCorrect)
	assert.True(t, loadOptions(t, db, q.ID)[second.ID].IsCorrect)
	assert.Equal(t, 1, countCorrect(t, db, q.ID))
}

func TestOptionService_MarkOtherOptionCorrect(t *testing.T) {
	svc, db := newTestOptionService(t)
	q := testutil.CreateQuestion(t, db)
	a := testutil.CreateOption(t, db, q.ID, "A", true)
	b := testutil.CreateOption(t, db, q.ID, "B", false)
	c := testutil.CreateOption(t, db, q.ID, "C", false)

	updated, err := svc.SetOption(context.Background(), SetOptionInput{
		QuestionID: q.ID,
		OptionID:   &b.ID,
		Text:       strPtr("x"),
		IsCorrect:  boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, b.ID, updated.ID)
	assert.Equal(t, "x", updated.OptionText)
	assert.True(t, updated.IsCorrect)

	options := loadOptions(t, db, q.ID)
	assert.False(t, options[a.ID].IsCorrect)
	assert.Equal(t, "A", options[a.ID].OptionText)
	assert.True(t, options[b.ID].IsCorrect)
	assert.Equal(t, "x", options[b.ID].OptionText)
	assert.False(t, options[c.ID].IsCorrect)
	assert.Equal(t, "C", options[c.ID].OptionText)
}

func TestOptionService_UpdateKeepsOtherFields(t *testing.T) {
	svc, db := newTestOptionService(t)
	q := testutil.CreateQuestion(t, db)
	a := testutil.CreateOption(t, db, q.ID, "A", true)
	ctx := context.Background()

	// Только текст: отметка правильности сохраняется
	updated, err := svc.SetOption(ctx, SetOptionInput{QuestionID: q.ID, OptionID: &a.ID, Text: strPtr("A2")})
	require.NoError(t, err)
	assert.True(t, updated.IsCorrect)
	assert.Equal(t, "A2", updated.OptionText)

	// Повторная отметка уже правильного варианта ничего не ломает
	updated, err = svc.SetOption(ctx, SetOptionInput{QuestionID: q.ID, OptionID: &a.ID, IsCorrect: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsCorrect)

	// Снятие отметки оставляет вопрос без правильного ответа
	updated, err = svc.SetOption(ctx, SetOptionInput{QuestionID: q.ID, OptionID: &a.ID, IsCorrect: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsCorrect)
	assert.Equal(t, "A2", updated.OptionText)
	assert.Equal(t, 0, countCorrect(t, db, q.ID))
}

func TestOptionService_NotFound(t *testing.T) {
	svc, db := newTestOptionService(t)
	q := testutil.CreateQuestion(t, db)
	other := testutil.CreateQuestion(t, db)
	foreign := testutil.CreateOption(t, db, other.ID, "foreign", false)
	own := testutil.CreateOption(t, db, q.ID, "own", true)
	ctx := context.Background()

	missing := uuid.New()
	_, err := svc.SetOption(ctx, SetOptionInput{QuestionID: uuid.New(), Text: strPtr("A")})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.SetOption(ctx, SetOptionInput{QuestionID: q.ID, OptionID: &missing, Text: strPtr("A")})
	assert.ErrorIs(t, err, ErrOptionNotFound)

	// Вариант другого вопроса считается не найденным и не изменяется
	_, err = svc.SetOption(ctx, SetOptionInput{QuestionID: q.ID, OptionID: &foreign.ID, IsCorrect: boolPtr(true)})
	assert.ErrorIs(t, err, ErrOptionNotFound)
	assert.False(t, loadOptions(t, db, other.ID)[foreign.ID].IsCorrect)
	assert.True(t, loadOptions(t, db, q.ID)[own.ID].IsCorrect, "неудачный вызов не должен снимать отметку")
}

func TestOptionService_Validation(t *testing.T) {
	svc, db := newTestOptionService(t)
	q := testutil.CreateQuestion(t, db)
	a := testutil.CreateOption(t, db, q.ID, "A", true)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    SetOptionInput
		field string
	}{
		{"create without text", SetOptionInput{QuestionID: q.ID, IsCorrect: boolPtr(true)}, "option_text"},
		{"create with blank text", SetOptionInput{QuestionID: q.ID, Text: strPtr("   ")}, "option_text"},
		{"update with empty text", SetOptionInput{QuestionID: q.ID, OptionID: &a.ID, Text: strPtr("")}, "option_text"},
		{"update without fields", SetOptionInput{QuestionID: q.ID, OptionID: &a.ID}, "option"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetOption(ctx, tt.in)
			require.ErrorIs(t, err, apperrors.ErrValidation)
			var fieldErr *apperrors.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}

	assert.Equal(t, "A", loadOptions(t, db, q.ID)[a.ID].OptionText)
}

func TestOptionService_ConcurrentMarkCorrect(t *testing.T) {
	svc, db := newTestOptionService(t)
	q := testutil.CreateQuestion(t, db)

	const n = 8
	options := make([]*entity.QuestionOption, n)
	for i := range options {
		options[i] = testutil.CreateOption(t, db, q.ID, fmt.Sprintf("opt-%d", i), false)
	}

	var wg sync.WaitGroup
	errs := make(chan error, n*2)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := svc.SetOption(context.Background(), SetOptionInput{QuestionID: q.ID, OptionID: &id, IsCorrect: boolPtr(true)})
			errs <- err
		}(options[i].ID)
		go func(i int) {
			defer wg.Done()
			_, err := svc.SetOption(context.Background(), SetOptionInput{
				QuestionID: q.ID,
				Text:       strPtr(fmt.Sprintf("new-%d", i)),
				IsCorrect:  boolPtr(true),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, countCorrect(t, db, q.ID))
}

func TestOptionService_ListAndDelete(t *testing.T) {
	svc, db := newTestOptionService(t)
	q := testutil.CreateQuestion(t, db)
	a := testutil.CreateOption(t, db, q.ID, "A", true)
	b := testutil.CreateOption(t, db, q.ID, "B", false)
	ctx := context.Background()

	list, err := svc.List(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)

	_, err = svc.List(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	// Удаление правильного варианта допустимо и оставляет ноль правильных
	require.NoError(t, svc.Delete(ctx, q.ID, a.ID))
	assert.Equal(t, 0, countCorrect(t, db, q.ID))

	assert.ErrorIs(t, svc.Delete(ctx, q.ID, a.ID), ErrOptionNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), b.ID), ErrQuestionNotFound)
}
