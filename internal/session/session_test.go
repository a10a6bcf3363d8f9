package session

import (
	"errors"
	"testing"
	"time"

	"github.com/lennyai/lenny-be/internal/delivery/http/entity"
)

func testFlashcards() *entity.FlashcardData {
	return &entity.FlashcardData{
		Flashcards: []entity.Flashcard{
			{Heading: "Newton's First Law", Information: "An object in motion stays in motion."},
		},
		Formulas: []string{"F = ma"},
	}
}

func testQuiz() []entity.QuizQuestion {
	return []entity.QuizQuestion{
		{Question: "Q1", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "A", Explanation: "Because A."},
		{Question: "Q2", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "B", Explanation: "Because B."},
		{Question: "Q3", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "C", Explanation: "Because C.", Hint: "Think C."},
	}
}

// drive a fresh session to the taking-quiz phase
func quizSession(t *testing.T) *Session {
	t.Helper()
	s := New("s-test")
	mustDo(t, s.BeginFlashcardGeneration("Physics", "High School"))
	mustDo(t, s.CompleteFlashcardGeneration(testFlashcards()))
	mustDo(t, s.StartDifficultySelection())
	mustDo(t, s.BeginQuizGeneration(entity.DifficultyMedium))
	mustDo(t, s.CompleteQuizGeneration(testQuiz()))
	return s
}

func mustDo(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
}

func TestSession_HappyPathPhases(t *testing.T) {
	s := New("s-test")
	if s.Phase() != PhaseInput {
		t.Fatalf("initial phase = %s, want %s", s.Phase(), PhaseInput)
	}

	mustDo(t, s.BeginFlashcardGeneration("Physics", "High School"))
	if s.Phase() != PhaseGeneratingFlashcards {
		t.Errorf("phase = %s, want %s", s.Phase(), PhaseGeneratingFlashcards)
	}

	mustDo(t, s.CompleteFlashcardGeneration(testFlashcards()))
	if s.Phase() != PhaseViewingFlashcards {
		t.Errorf("phase = %s, want %s", s.Phase(), PhaseViewingFlashcards)
	}

	mustDo(t, s.StartDifficultySelection())
	mustDo(t, s.BeginQuizGeneration(entity.DifficultyEasy))
	mustDo(t, s.CompleteQuizGeneration(testQuiz()))
	if s.Phase() != PhaseTakingQuiz {
		t.Errorf("phase = %s, want %s", s.Phase(), PhaseTakingQuiz)
	}
}

func TestSession_RejectsOutOfPhaseActions(t *testing.T) {
	s := New("s-test")

	if err := s.StartDifficultySelection(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("StartDifficultySelection from input: error = %v, want ErrInvalidTransition", err)
	}
	if _, err := s.SubmitQuiz(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SubmitQuiz from input: error = %v, want ErrInvalidTransition", err)
	}

	// A second generation while one is outstanding is rejected.
	mustDo(t, s.BeginFlashcardGeneration("Physics", "High School"))
	if err := s.BeginFlashcardGeneration("Biology", "High School"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("concurrent generation: error = %v, want ErrInvalidTransition", err)
	}
	if err := s.Reset(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("reset during generation: error = %v, want ErrInvalidTransition", err)
	}
}

func TestSession_GenerationFailureRecovers(t *testing.T) {
	s := New("s-test")
	mustDo(t, s.BeginFlashcardGeneration("Physics", "High School"))
	mustDo(t, s.FailFlashcardGeneration("Failed to generate flashcards. Please try again."))

	if s.Phase() != PhaseInput {
		t.Errorf("phase after failure = %s, want %s", s.Phase(), PhaseInput)
	}
	if v := s.View(); v.Error == "" {
		t.Error("failure left no user-visible error")
	}

	// The next attempt clears the error.
	mustDo(t, s.BeginFlashcardGeneration("Physics", "High School"))
	if v := s.View(); v.Error != "" {
		t.Errorf("error not cleared on retry: %q", v.Error)
	}

	// Quiz failure returns to difficulty selection, not input.
	mustDo(t, s.CompleteFlashcardGeneration(testFlashcards()))
	mustDo(t, s.StartDifficultySelection())
	mustDo(t, s.BeginQuizGeneration(entity.DifficultyHard))
	mustDo(t, s.FailQuizGeneration("Failed to generate the quiz. Please try again."))
	if s.Phase() != PhaseSelectingDifficulty {
		t.Errorf("phase after quiz failure = %s, want %s", s.Phase(), PhaseSelectingDifficulty)
	}
}

func TestSession_ScoreCountsExactMatchesOnly(t *testing.T) {
	s := quizSession(t)

	// Answers: correct, wrong, and the last one skipped then left to review.
	mustDo(t, s.SelectAnswer("A"))
	mustDo(t, s.Advance())
	mustDo(t, s.SelectAnswer("D"))
	mustDo(t, s.Advance())

	done, err := s.SubmitQuiz()
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if done {
		t.Fatal("quiz finalized with an unanswered question")
	}
	if s.Phase() != PhaseTakingQuiz {
		t.Fatalf("phase = %s, want still %s", s.Phase(), PhaseTakingQuiz)
	}

	// Review pass answers the remaining question wrong.
	mustDo(t, s.SelectAnswer("A"))
	done, err = s.SubmitQuiz()
	if err != nil || !done {
		t.Fatalf("SubmitQuiz after review = (%v, %v), want done", done, err)
	}

	view := s.View()
	if view.Results == nil {
		t.Fatal("results view missing after submission")
	}
	if view.Results.Score != 1 {
		t.Errorf("score = %d, want 1", view.Results.Score)
	}
	if view.Results.TotalQuestions != 3 {
		t.Errorf("total = %d, want 3", view.Results.TotalQuestions)
	}
	if !view.Results.Questions[0].IsCorrect || view.Results.Questions[1].IsCorrect || view.Results.Questions[2].IsCorrect {
		t.Errorf("per-question correctness = %+v", view.Results.Questions)
	}
}

func TestSession_SkipOnLastFinalizesLikeSubmit(t *testing.T) {
	s := quizSession(t)
	mustDo(t, s.SelectAnswer("A"))
	mustDo(t, s.Advance())
	mustDo(t, s.SelectAnswer("B"))
	mustDo(t, s.Advance())

	done, err := s.Skip()
	if err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if done {
		t.Fatal("skip on last unanswered question should start review, not finalize")
	}
	if v := s.View(); v.Quiz == nil || !v.Quiz.Reviewing {
		t.Error("expected reviewing quiz view after skipping last question")
	}
}

func TestSession_QuizViewWithholdsAnswers(t *testing.T) {
	s := quizSession(t)

	v := s.View()
	if v.Quiz == nil {
		t.Fatal("quiz view missing in taking-quiz phase")
	}
	if v.Results != nil {
		t.Error("results leaked before submission")
	}
	if v.Quiz.Question != "Q1" || len(v.Quiz.Options) != 4 {
		t.Errorf("unexpected question projection: %+v", v.Quiz)
	}
	if v.Quiz.ProgressLabel != "Question 1 of 3" {
		t.Errorf("progress label = %q", v.Quiz.ProgressLabel)
	}

	// Hints surface with the question that has one.
	mustDo(t, s.Advance())
	mustDo(t, s.Advance())
	if v := s.View(); v.Quiz.Hint != "Think C." {
		t.Errorf("hint = %q, want %q", v.Quiz.Hint, "Think C.")
	}
}

func TestSession_ResetClearsEverything(t *testing.T) {
	s := quizSession(t)
	mustDo(t, s.SelectAnswer("A"))
	mustDo(t, s.Reset())

	v := s.View()
	if v.Phase != string(PhaseInput) {
		t.Errorf("phase = %s, want %s", v.Phase, PhaseInput)
	}
	if v.Topic != "" || v.GradeLevel != "" || v.Flashcards != nil || v.Quiz != nil || v.Results != nil || v.Error != "" {
		t.Errorf("reset left residual state: %+v", v)
	}
}

func TestStore_CreateGetPurge(t *testing.T) {
	st := NewStore()

	s, err := st.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID() == "" {
		t.Fatal("created session has empty id")
	}

	got, ok := st.Get(s.ID())
	if !ok || got != s {
		t.Fatalf("Get(%q) = (%v, %v)", s.ID(), got, ok)
	}

	if _, ok := st.Get("s-missing"); ok {
		t.Error("Get returned a session for an unknown id")
	}

	// Fresh sessions survive a purge with a generous idle window.
	if n := st.Purge(time.Hour); n != 0 {
		t.Errorf("Purge removed %d fresh sessions", n)
	}
	// Everything is idle relative to a negative window.
	if n := st.Purge(-time.Second); n != 1 {
		t.Errorf("Purge removed %d sessions, want 1", n)
	}
	if _, ok := st.Get(s.ID()); ok {
		t.Error("purged session still retrievable")
	}
}
