// Package session holds the per-user study journey: an explicit finite state
// machine over the application phases, the content fetched for the current
// topic, and the quiz flow once a quiz is underway. All state is in-memory
// and lives only as long as the session.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lennyai/lenny-be/internal/delivery/http/entity"
	"github.com/lennyai/lenny-be/internal/quiz"
)

// Phase is one of the seven mutually exclusive states of the study journey.
type Phase string

const (
	PhaseInput                Phase = "input"
	PhaseGeneratingFlashcards Phase = "generating_flashcards"
	PhaseViewingFlashcards    Phase = "viewing_flashcards"
	PhaseSelectingDifficulty  Phase = "selecting_difficulty"
	PhaseGeneratingQuiz       Phase = "generating_quiz"
	PhaseTakingQuiz           Phase = "taking_quiz"
	PhaseQuizResults          Phase = "quiz_results"
)

// ErrInvalidTransition marks an action attempted outside its valid phase,
// including content mutations while a generation call is outstanding.
var ErrInvalidTransition = errors.New("session: action not valid in current phase")

// Session is safe for concurrent use; every operation takes the session lock,
// so exactly one phase is active at a time. Generation is modelled as a
// dedicated phase entered before the gateway call and left on its completion,
// which is what rejects concurrent submissions.
type Session struct {
	mu sync.Mutex

	id         string
	phase      Phase
	topic      string
	gradeLevel string
	difficulty entity.Difficulty
	flashcards []entity.Flashcard
	formulas   []string
	questions  []entity.QuizQuestion
	flow       *quiz.Flow
	answers    []string
	score      int
	studyCount int
	lastError  string
	lastActive time.Time
}

func New(id string) *Session {
	return &Session{
		id:         id,
		phase:      PhaseInput,
		lastActive: time.Now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) require(action string, from ...Phase) error {
	for _, p := range from {
		if s.phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, action, s.phase)
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

// BeginFlashcardGeneration enters the generating phase and records the pair
// being studied. Any error from the previous attempt is cleared.
func (s *Session) BeginFlashcardGeneration(topic, gradeLevel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("generate flashcards", PhaseInput); err != nil {
		return err
	}
	s.topic = topic
	s.gradeLevel = gradeLevel
	s.lastError = ""
	s.phase = PhaseGeneratingFlashcards
	s.touch()
	return nil
}

func (s *Session) CompleteFlashcardGeneration(data *entity.FlashcardData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("finish flashcard generation", PhaseGeneratingFlashcards); err != nil {
		return err
	}
	s.flashcards = data.Flashcards
	s.formulas = data.Formulas
	s.phase = PhaseViewingFlashcards
	s.touch()
	return nil
}

// FailFlashcardGeneration returns to the input form with a user-visible
// message. Generation failures never end the session.
func (s *Session) FailFlashcardGeneration(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("fail flashcard generation", PhaseGeneratingFlashcards); err != nil {
		return err
	}
	s.lastError = message
	s.phase = PhaseInput
	s.touch()
	return nil
}

func (s *Session) StartDifficultySelection() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("start difficulty selection", PhaseViewingFlashcards); err != nil {
		return err
	}
	s.phase = PhaseSelectingDifficulty
	s.touch()
	return nil
}

func (s *Session) BackToFlashcards() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("return to flashcards", PhaseSelectingDifficulty); err != nil {
		return err
	}
	s.phase = PhaseViewingFlashcards
	s.touch()
	return nil
}

func (s *Session) BeginQuizGeneration(difficulty entity.Difficulty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("generate quiz", PhaseSelectingDifficulty); err != nil {
		return err
	}
	s.difficulty = difficulty
	s.lastError = ""
	s.phase = PhaseGeneratingQuiz
	s.touch()
	return nil
}

func (s *Session) CompleteQuizGeneration(questions []entity.QuizQuestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("finish quiz generation", PhaseGeneratingQuiz); err != nil {
		return err
	}
	flow, err := quiz.NewFlow(len(questions))
	if err != nil {
		return err
	}
	s.questions = questions
	s.flow = flow
	s.phase = PhaseTakingQuiz
	s.touch()
	return nil
}

func (s *Session) FailQuizGeneration(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("fail quiz generation", PhaseGeneratingQuiz); err != nil {
		return err
	}
	s.lastError = message
	s.phase = PhaseSelectingDifficulty
	s.touch()
	return nil
}

// SelectAnswer records an answer for the question currently displayed.
func (s *Session) SelectAnswer(option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("answer question", PhaseTakingQuiz); err != nil {
		return err
	}
	s.flow.SelectAnswer(option)
	s.touch()
	return nil
}

func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("advance", PhaseTakingQuiz); err != nil {
		return err
	}
	s.flow.Advance()
	s.touch()
	return nil
}

func (s *Session) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("retreat", PhaseTakingQuiz); err != nil {
		return err
	}
	s.flow.Retreat()
	s.touch()
	return nil
}

// Skip leaves the current question unanswered. Skipping the last question
// finalizes exactly like SubmitQuiz does.
func (s *Session) Skip() (done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("skip question", PhaseTakingQuiz); err != nil {
		return false, err
	}
	answers, done := s.flow.Skip()
	if done {
		s.finalize(answers)
	}
	s.touch()
	return done, nil
}

// SubmitQuiz either starts a review pass over unanswered questions or, once
// every slot is filled, scores the quiz and moves to the results phase.
func (s *Session) SubmitQuiz() (done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("submit quiz", PhaseTakingQuiz); err != nil {
		return false, err
	}
	answers, done := s.flow.Submit()
	if done {
		s.finalize(answers)
	}
	s.touch()
	return done, nil
}

// finalize scores by exact string match; the unanswered sentinel never
// matches because generated answers are validated non-empty.
func (s *Session) finalize(answers []string) {
	score := 0
	for i, q := range s.questions {
		if q.CorrectAnswer == answers[i] {
			score++
		}
	}
	s.answers = answers
	s.score = score
	s.phase = PhaseQuizResults
}

// SetStudyCount records the display count resolved from history after the
// quiz completes.
func (s *Session) SetStudyCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studyCount = n
}

// Topic returns the pair currently being studied.
func (s *Session) Topic() (topic, gradeLevel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic, s.gradeLevel
}

// Reset returns the session to the input form and discards all fetched
// content, answers, and errors. Not valid while a generation call is
// outstanding.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseGeneratingFlashcards || s.phase == PhaseGeneratingQuiz {
		return fmt.Errorf("%w: reset while %s", ErrInvalidTransition, s.phase)
	}
	s.phase = PhaseInput
	s.topic = ""
	s.gradeLevel = ""
	s.difficulty = ""
	s.flashcards = nil
	s.formulas = nil
	s.questions = nil
	s.flow = nil
	s.answers = nil
	s.score = 0
	s.studyCount = 0
	s.lastError = ""
	s.touch()
	return nil
}

// View projects the session into the client-facing shape for its current
// phase. Correct answers and explanations stay server-side until the
// results phase.
func (s *Session) View() *entity.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := &entity.SessionView{
		SessionID:  s.id,
		Phase:      string(s.phase),
		Topic:      s.topic,
		GradeLevel: s.gradeLevel,
		Difficulty: s.difficulty,
		Error:      s.lastError,
	}

	switch s.phase {
	case PhaseViewingFlashcards, PhaseSelectingDifficulty:
		view.Flashcards = s.flashcards
		view.Formulas = s.formulas
	case PhaseTakingQuiz:
		view.Quiz = s.quizView()
	case PhaseQuizResults:
		view.Results = s.resultsView()
	}

	return view
}

func (s *Session) quizView() *entity.QuizView {
	pos := s.flow.Position()
	q := s.questions[pos]
	label, percent := s.flow.Progress()

	return &entity.QuizView{
		ProgressLabel:   label,
		ProgressPercent: percent,
		Reviewing:       s.flow.Reviewing(),
		QuestionIndex:   pos,
		TotalQuestions:  len(s.questions),
		Question:        q.Question,
		Options:         q.Options,
		Hint:            q.Hint,
		SelectedOption:  s.flow.Answers()[pos],
		FirstInSequence: s.flow.FirstInSequence(),
		LastInSequence:  s.flow.LastInSequence(),
		AllAnswered:     s.flow.AllAnswered(),
		OffersSubmit:    s.flow.OffersSubmit(),
	}
}

func (s *Session) resultsView() *entity.ResultsView {
	results := make([]entity.QuestionResult, 0, len(s.questions))
	for i, q := range s.questions {
		results = append(results, entity.QuestionResult{
			Question:            q.Question,
			Options:             q.Options,
			CorrectAnswer:       q.CorrectAnswer,
			UserAnswer:          s.answers[i],
			IsCorrect:           q.CorrectAnswer == s.answers[i],
			Explanation:         q.Explanation,
			ExplanationImageURL: q.ExplanationImageURL,
		})
	}

	studyCount := s.studyCount
	if studyCount < 1 {
		studyCount = 1
	}

	return &entity.ResultsView{
		Score:           s.score,
		TotalQuestions:  len(s.questions),
		ScorePercentage: int(float64(s.score)/float64(len(s.questions))*100 + 0.5),
		StudyCount:      studyCount,
		Questions:       results,
	}
}
