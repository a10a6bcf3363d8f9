package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/lennyai/lenny-be/internal/delivery/http/domain"
	"github.com/lennyai/lenny-be/internal/delivery/http/entity"
	"github.com/lennyai/lenny-be/internal/delivery/http/repository"
	"github.com/lennyai/lenny-be/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// ErrSessionNotFound maps to a 404 at the delivery layer.
var ErrSessionNotFound = errors.New("study session not found")

// ContentGateway is the generative backend producing flashcards and quizzes.
// Implemented by llm.GeminiClient in production and by a mock in tests.
type ContentGateway interface {
	GenerateFlashcards(ctx context.Context, topic, gradeLevel string) (*entity.FlashcardData, error)
	GenerateQuiz(ctx context.Context, topic, gradeLevel string, difficulty entity.Difficulty) ([]entity.QuizQuestion, error)
}

type StudyUsecase interface {
	CreateSession(ctx context.Context) (*entity.SessionView, error)
	GetSession(ctx context.Context, sessionID string) (*entity.SessionView, error)
	GenerateFlashcards(ctx context.Context, sessionID string, req entity.GenerateFlashcardsRequest) (*entity.SessionView, error)
	StartDifficultySelection(ctx context.Context, sessionID string) (*entity.SessionView, error)
	BackToFlashcards(ctx context.Context, sessionID string) (*entity.SessionView, error)
	GenerateQuiz(ctx context.Context, sessionID string, req entity.GenerateQuizRequest) (*entity.SessionView, error)
	SelectAnswer(ctx context.Context, sessionID string, req entity.SelectAnswerRequest) (*entity.SessionView, error)
	NextQuestion(ctx context.Context, sessionID string) (*entity.SessionView, error)
	PreviousQuestion(ctx context.Context, sessionID string) (*entity.SessionView, error)
	SkipQuestion(ctx context.Context, sessionID string) (*entity.SessionView, error)
	SubmitQuiz(ctx context.Context, sessionID string) (*entity.SessionView, error)
	RestartSession(ctx context.Context, sessionID string) (*entity.SessionView, error)
	History(ctx context.Context) ([]entity.TopicHistoryItem, error)
	Theme(ctx context.Context) (entity.Theme, error)
	SetTheme(ctx context.Context, theme entity.Theme) error
}

type StudyConfig struct {
	DB         *gorm.DB
	Gateway    ContentGateway
	Repository repository.HistoryRepository
	Sessions   *session.Store
	Log        *logrus.Logger
	Config     *viper.Viper
}

type studyUsecase struct {
	cfg StudyConfig
}

func NewStudyUsecase(cfg StudyConfig) StudyUsecase {
	return &studyUsecase{cfg: cfg}
}

func (u *studyUsecase) CreateSession(_ context.Context) (*entity.SessionView, error) {
	s, err := u.cfg.Sessions.Create()
	if err != nil {
		return nil, err
	}
	return s.View(), nil
}

func (u *studyUsecase) GetSession(_ context.Context, sessionID string) (*entity.SessionView, error) {
	s, ok := u.cfg.Sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.View(), nil
}

// GenerateFlashcards drives the input -> generating -> viewing leg. The
// history record is written synchronously before the phase transition, so a
// viewing-flashcards session always has its study count on file. A gateway
// failure returns the session to the input phase with a fixed user-facing
// message; a history write failure is logged and otherwise ignored.
func (u *studyUsecase) GenerateFlashcards(ctx context.Context, sessionID string, req entity.GenerateFlashcardsRequest) (*entity.SessionView, error) {
	s, ok := u.cfg.Sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if err := s.BeginFlashcardGeneration(req.Topic, req.GradeLevel); err != nil {
		return nil, err
	}

	data, err := u.cfg.Gateway.GenerateFlashcards(ctx, req.Topic, req.GradeLevel)
	if err != nil {
		u.cfg.Log.Errorf("flashcard generation for %q failed: %v", req.Topic, err)
		if failErr := s.FailFlashcardGeneration(domain.STUDY_FLASHCARDS_GENERATE_FAILED); failErr != nil {
			return nil, failErr
		}
		return s.View(), nil
	}

	if err := u.cfg.Repository.RecordStudySession(u.cfg.DB, req.Topic, req.GradeLevel); err != nil {
		u.cfg.Log.Warnf("recording study session for %q failed: %v", req.Topic, err)
	}

	if err := s.CompleteFlashcardGeneration(data); err != nil {
		return nil, err
	}
	return s.View(), nil
}

func (u *studyUsecase) StartDifficultySelection(_ context.Context, sessionID string) (*entity.SessionView, error) {
	return u.transition(sessionID, func(s *session.Session) error {
		return s.StartDifficultySelection()
	})
}

func (u *studyUsecase) BackToFlashcards(_ context.Context, sessionID string) (*entity.SessionView, error) {
	return u.transition(sessionID, func(s *session.Session) error {
		return s.BackToFlashcards()
	})
}

// GenerateQuiz drives the selecting -> generating -> taking leg. Failures
// return to difficulty selection with a fixed message.
func (u *studyUsecase) GenerateQuiz(ctx context.Context, sessionID string, req entity.GenerateQuizRequest) (*entity.SessionView, error) {
	s, ok := u.cfg.Sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if err := s.BeginQuizGeneration(req.Difficulty); err != nil {
		return nil, err
	}

	topic, gradeLevel := s.Topic()
	questions, err := u.cfg.Gateway.GenerateQuiz(ctx, topic, gradeLevel, req.Difficulty)
	if err != nil {
		u.cfg.Log.Errorf("quiz generation for %q (%s) failed: %v", topic, req.Difficulty, err)
		if failErr := s.FailQuizGeneration(domain.STUDY_QUIZ_GENERATE_FAILED); failErr != nil {
			return nil, failErr
		}
		return s.View(), nil
	}

	if err := s.CompleteQuizGeneration(questions); err != nil {
		return nil, err
	}
	return s.View(), nil
}

func (u *studyUsecase) SelectAnswer(_ context.Context, sessionID string, req entity.SelectAnswerRequest) (*entity.SessionView, error) {
	return u.transition(sessionID, func(s *session.Session) error {
		return s.SelectAnswer(req.Option)
	})
}

func (u *studyUsecase) NextQuestion(_ context.Context, sessionID string) (*entity.SessionView, error) {
	return u.transition(sessionID, func(s *session.Session) error {
		return s.Advance()
	})
}

func (u *studyUsecase) PreviousQuestion(_ context.Context, sessionID string) (*entity.SessionView, error) {
	return u.transition(sessionID, func(s *session.Session) error {
		return s.Retreat()
	})
}

func (u *studyUsecase) SkipQuestion(_ context.Context, sessionID string) (*entity.SessionView, error) {
	s, ok := u.cfg.Sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	done, err := s.Skip()
	if err != nil {
		return nil, err
	}
	if done {
		u.attachStudyCount(s)
	}
	return s.View(), nil
}

// SubmitQuiz finalizes when every slot is answered, otherwise the returned
// view shows the review pass the flow entered.
func (u *studyUsecase) SubmitQuiz(_ context.Context, sessionID string) (*entity.SessionView, error) {
	s, ok := u.cfg.Sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	done, err := s.SubmitQuiz()
	if err != nil {
		return nil, err
	}
	if done {
		u.attachStudyCount(s)
	}
	return s.View(), nil
}

func (u *studyUsecase) RestartSession(_ context.Context, sessionID string) (*entity.SessionView, error) {
	return u.transition(sessionID, func(s *session.Session) error {
		return s.Reset()
	})
}

// History returns the most-recently-studied list. Persistence failures
// degrade to an empty list, never an error to the client.
func (u *studyUsecase) History(_ context.Context) ([]entity.TopicHistoryItem, error) {
	records, err := u.cfg.Repository.LoadHistory(u.cfg.DB)
	if err != nil {
		u.cfg.Log.Warnf("loading study history failed: %v", err)
		return []entity.TopicHistoryItem{}, nil
	}

	items := make([]entity.TopicHistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, entity.TopicHistoryItem{
			Topic:      r.Topic,
			GradeLevel: r.GradeLevel,
			Count:      r.Count,
		})
	}
	return items, nil
}

func (u *studyUsecase) Theme(_ context.Context) (entity.Theme, error) {
	theme, err := u.cfg.Repository.GetTheme(u.cfg.DB)
	if err != nil {
		u.cfg.Log.Warnf("loading theme preference failed: %v", err)
		return entity.ThemeLight, nil
	}
	return entity.Theme(theme), nil
}

func (u *studyUsecase) SetTheme(_ context.Context, theme entity.Theme) error {
	if err := u.cfg.Repository.SetTheme(u.cfg.DB, string(theme)); err != nil {
		return fmt.Errorf("persisting theme preference: %w", err)
	}
	return nil
}

func (u *studyUsecase) transition(sessionID string, fn func(*session.Session) error) (*entity.SessionView, error) {
	s, ok := u.cfg.Sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	return s.View(), nil
}

// attachStudyCount resolves the display count for the results view from the
// history store, defaulting to 1 when the lookup fails or finds nothing.
func (u *studyUsecase) attachStudyCount(s *session.Session) {
	topic, gradeLevel := s.Topic()
	count, err := u.cfg.Repository.StudyCount(u.cfg.DB, topic, gradeLevel)
	if err != nil {
		u.cfg.Log.Warnf("study count lookup for %q failed: %v", topic, err)
		count = 1
	}
	s.SetStudyCount(count)
}
