package quiz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mindcheck-service/internal/domain"
)

func threeQuestions() domain.Questionnaire {
	options := []domain.Option{
		{Label: "A", Category: domain.CategoryGood},
		{Label: "B", Category: domain.CategoryMedium},
		{Label: "C", Category: domain.CategoryAverage},
		{Label: "D", Category: domain.CategoryBad},
	}
	return domain.Questionnaire{
		ID: "tiny",
		Questions: []domain.Question{
			{Prompt: "q1", Options: options},
			{Prompt: "q2", Options: options},
			{Prompt: "q3", Options: options},
		},
	}
}

func TestEngineStartsAtFirstQuestion(t *testing.T) {
	e, err := New(threeQuestions())
	require.NoError(t, err)

	v := e.View()
	require.Equal(t, 0, v.Index)
	require.Equal(t, 3, v.Total)
	require.Equal(t, -1, v.Selected)
	require.False(t, v.CanAdvance)
	require.False(t, v.CanRetreat)
	require.False(t, v.Completed)
	require.Equal(t, []string{"A", "B", "C", "D"}, v.Options)
}

func TestNewRejectsEmptyQuestionnaire(t *testing.T) {
	_, err := New(domain.Questionnaire{ID: "empty"})
	require.ErrorIs(t, err, domain.ErrQuizNotFound)
}

func TestAdvanceWithoutSelectionKeepsPosition(t *testing.T) {
	e, _ := New(threeQuestions())

	require.ErrorIs(t, e.Advance(), domain.ErrNoSelection)
	require.Equal(t, 0, e.Current())

	require.NoError(t, e.SelectAnswer(0, 2))
	require.Equal(t, 0, e.Current(), "selecting must not auto-advance")
	require.NoError(t, e.Advance())
	require.Equal(t, 1, e.Current())
	require.ErrorIs(t, e.Advance(), domain.ErrNoSelection)
	require.Equal(t, 1, e.Current())
}

func TestRetreatAtFirstQuestionIsBoundary(t *testing.T) {
	e, _ := New(threeQuestions())

	require.ErrorIs(t, e.Retreat(), domain.ErrBoundary)
	require.Equal(t, 0, e.Current())
}

func TestRetreatPreservesAnswersByDefault(t *testing.T) {
	e, _ := New(threeQuestions())
	require.NoError(t, e.SelectAnswer(0, 1))
	require.NoError(t, e.Advance())
	require.NoError(t, e.SelectAnswer(1, 3))

	require.NoError(t, e.Retreat())
	require.Equal(t, 0, e.Current())
	require.Equal(t, 1, e.Answer(0))
	require.Equal(t, 3, e.Answer(1))
	require.True(t, e.View().CanAdvance)
}

func TestRetreatDiscardPolicyClearsLeftAnswer(t *testing.T) {
	e, _ := New(threeQuestions(), WithRetreatPolicy(DiscardOnRetreat))
	require.NoError(t, e.SelectAnswer(0, 1))
	require.NoError(t, e.Advance())
	require.NoError(t, e.SelectAnswer(1, 3))

	require.NoError(t, e.Retreat())
	require.Equal(t, 1, e.Answer(0))
	require.Equal(t, -1, e.Answer(1))
}

func TestSelectAnswerValidatesIndexes(t *testing.T) {
	e, _ := New(threeQuestions())

	require.ErrorIs(t, e.SelectAnswer(-1, 0), domain.ErrQuestionOutOfRange)
	require.ErrorIs(t, e.SelectAnswer(3, 0), domain.ErrQuestionOutOfRange)
	require.ErrorIs(t, e.SelectAnswer(0, 4), domain.ErrOptionOutOfRange)
	require.ErrorIs(t, e.SelectAnswer(0, -2), domain.ErrOptionOutOfRange)
}

func TestAdvanceOnLastQuestionCompletes(t *testing.T) {
	e, _ := New(threeQuestions())
	answers := []int{3, 0, 3}
	for i, a := range answers {
		require.NoError(t, e.SelectAnswer(i, a))
		require.NoError(t, e.Advance())
	}

	res, ok := e.Result()
	require.True(t, ok)
	require.Equal(t, domain.CategoryBad, res.Dominant)
	require.Equal(t, 2, res.Tally[domain.CategoryBad])
	require.Equal(t, 1, res.Tally[domain.CategoryGood])
	require.Equal(t, 3, res.Tally.Total())

	require.ErrorIs(t, e.Advance(), domain.ErrQuizCompleted)
	require.ErrorIs(t, e.SelectAnswer(0, 0), domain.ErrQuizCompleted)
	require.True(t, e.View().Completed)
}

func TestSubmitRequiresFinalAnswer(t *testing.T) {
	e, _ := New(threeQuestions())
	require.NoError(t, e.SelectAnswer(0, 0))

	_, err := e.Submit()
	require.ErrorIs(t, err, domain.ErrNoSelection)
	require.False(t, e.Completed())

	require.NoError(t, e.SelectAnswer(2, 1))
	res, err := e.Submit()
	require.NoError(t, err)
	require.Equal(t, 2, res.Tally.Total(), "only answered questions are counted")
	require.Equal(t, domain.CategoryGood, res.Dominant)
}

func TestTallyMatchesSelectionsForEveryPath(t *testing.T) {
	q := Wellbeing()
	for seed := 0; seed < len(q.Questions)*4; seed++ {
		e, err := New(q)
		require.NoError(t, err)

		want := domain.NewTally()
		for i := range q.Questions {
			choice := (seed + i*seed/3) % len(q.Questions[i].Options)
			require.NoError(t, e.SelectAnswer(i, choice))
			want[q.Questions[i].Options[choice].Category]++
			require.NoError(t, e.Advance())
		}

		res, ok := e.Result()
		require.True(t, ok)
		require.Equal(t, want, res.Tally)
		require.Equal(t, len(q.Questions), res.Tally.Total())
	}
}

func TestDominantTieBreak(t *testing.T) {
	tally := domain.Tally{domain.CategoryGood: 2, domain.CategoryMedium: 2, domain.CategoryAverage: 0, domain.CategoryBad: 0}
	require.Equal(t, domain.CategoryGood, Dominant(tally))

	tally = domain.Tally{domain.CategoryGood: 0, domain.CategoryMedium: 0, domain.CategoryAverage: 0, domain.CategoryBad: 5}
	require.Equal(t, domain.CategoryBad, Dominant(tally))

	tally = domain.Tally{domain.CategoryGood: 1, domain.CategoryMedium: 0, domain.CategoryAverage: 3, domain.CategoryBad: 3}
	require.Equal(t, domain.CategoryAverage, Dominant(tally))

	require.Equal(t, domain.CategoryGood, Dominant(domain.NewTally()))
}

func TestRestartClearsProgress(t *testing.T) {
	e, _ := New(threeQuestions())
	for i := 0; i < 3; i++ {
		require.NoError(t, e.SelectAnswer(i, 1))
		require.NoError(t, e.Advance())
	}
	require.True(t, e.Completed())

	e.Restart()
	require.False(t, e.Completed())
	require.Equal(t, 0, e.Current())
	for i := 0; i < 3; i++ {
		require.Equal(t, -1, e.Answer(i))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	q := threeQuestions()
	e, _ := New(q, WithRetreatPolicy(DiscardOnRetreat))
	require.NoError(t, e.SelectAnswer(0, 2))
	require.NoError(t, e.Advance())

	restored, err := Restore(q, e.Snapshot())
	require.NoError(t, err)
	require.Equal(t, e.View(), restored.View())

	require.NoError(t, restored.SelectAnswer(1, 0))
	require.NoError(t, restored.Retreat())
	require.Equal(t, -1, restored.Answer(1), "policy survives the round trip")
}

func TestRestoreCompletedSnapshot(t *testing.T) {
	q := threeQuestions()
	e, _ := New(q)
	for i := 0; i < 3; i++ {
		require.NoError(t, e.SelectAnswer(i, 3))
		require.NoError(t, e.Advance())
	}

	restored, err := Restore(q, e.Snapshot())
	require.NoError(t, err)
	res, ok := restored.Result()
	require.True(t, ok)
	require.Equal(t, domain.CategoryBad, res.Dominant)
}

func TestRestoreRejectsMismatchedSnapshot(t *testing.T) {
	q := threeQuestions()
	_, err := Restore(q, Snapshot{QuestionnaireID: "other", Answers: []int{-1, -1, -1}})
	require.Error(t, err)

	_, err = Restore(q, Snapshot{QuestionnaireID: "tiny", Answers: []int{-1}})
	require.Error(t, err)

	_, err = Restore(q, Snapshot{QuestionnaireID: "tiny", Answers: []int{9, -1, -1}})
	require.ErrorIs(t, err, domain.ErrOptionOutOfRange)
}

func TestBundledQuestionnairesHaveFourOptions(t *testing.T) {
	bundled := Bundled()
	require.Len(t, bundled[WellbeingID].Questions, 15)
	require.Len(t, bundled[CheckupID].Questions, 13)
	for id, q := range bundled {
		require.Equal(t, id, q.ID)
		for _, question := range q.Questions {
			require.Len(t, question.Options, 4)
			for i, c := range domain.Categories {
				require.Equal(t, c, question.Options[i].Category)
			}
		}
	}
}
