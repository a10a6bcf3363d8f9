package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lennyai/lenny-be/internal/delivery/http/domain"
	"github.com/lennyai/lenny-be/internal/delivery/http/entity"
	"github.com/lennyai/lenny-be/internal/delivery/http/usecase"
	"github.com/lennyai/lenny-be/internal/pkg/response"
	"github.com/lennyai/lenny-be/internal/pkg/sound"
	"github.com/lennyai/lenny-be/internal/pkg/validate"
	"github.com/lennyai/lenny-be/internal/session"
	"github.com/sirupsen/logrus"
)

type (
	StudyHandler interface {
		CreateSession(ctx *fiber.Ctx) error
		GetSession(ctx *fiber.Ctx) error
		GenerateFlashcards(ctx *fiber.Ctx) error
		ReadyForQuiz(ctx *fiber.Ctx) error
		BackToFlashcards(ctx *fiber.Ctx) error
		GenerateQuiz(ctx *fiber.Ctx) error
		SelectAnswer(ctx *fiber.Ctx) error
		NextQuestion(ctx *fiber.Ctx) error
		PreviousQuestion(ctx *fiber.Ctx) error
		SkipQuestion(ctx *fiber.Ctx) error
		SubmitQuiz(ctx *fiber.Ctx) error
		RestartSession(ctx *fiber.Ctx) error
		GetHistory(ctx *fiber.Ctx) error
		GetTheme(ctx *fiber.Ctx) error
		SetTheme(ctx *fiber.Ctx) error
	}

	studyHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.StudyUsecase
		sounds    *sound.Service
	}
)

func NewStudyHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.StudyUsecase, sounds *sound.Service) StudyHandler {
	return &studyHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
		sounds:    sounds,
	}
}

// POST /study/sessions
func (h *studyHandler) CreateSession(ctx *fiber.Ctx) error {
	view, err := h.usecase.CreateSession(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.STUDY_SESSION_CREATE_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDY_SESSION_CREATE_SUCCESS, view, nil).Send(ctx)
}

// GET /study/sessions/:session_id
func (h *studyHandler) GetSession(ctx *fiber.Ctx) error {
	view, err := h.usecase.GetSession(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return h.failed(ctx, domain.STUDY_SESSION_GET_FAILED, err)
	}
	return response.NewSuccess(domain.STUDY_SESSION_GET_SUCCESS, view, nil).Send(ctx)
}

// POST /study/sessions/:session_id/flashcards
func (h *studyHandler) GenerateFlashcards(ctx *fiber.Ctx) error {
	var req entity.GenerateFlashcardsRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.STUDY_FLASHCARDS_GENERATE_FAILED, err, h.logger).Send(ctx)
	}

	view, err := h.usecase.GenerateFlashcards(ctx.UserContext(), ctx.Params("session_id"), req)
	if err != nil {
		return h.failed(ctx, domain.STUDY_FLASHCARDS_GENERATE_FAILED, err)
	}
	if view.Error != "" {
		// The gateway failed; the session already rolled back to input.
		return response.NewFailed(domain.STUDY_FLASHCARDS_GENERATE_FAILED, fiber.NewError(fiber.StatusBadGateway, view.Error), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDY_FLASHCARDS_GENERATE_SUCCESS, view, h.meta(sound.CueSubmit)).Send(ctx)
}

// POST /study/sessions/:session_id/ready
func (h *studyHandler) ReadyForQuiz(ctx *fiber.Ctx) error {
	view, err := h.usecase.StartDifficultySelection(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return h.failed(ctx, domain.STUDY_PHASE_CHANGE_FAILED, err)
	}
	return response.NewSuccess(domain.STUDY_PHASE_CHANGE_SUCCESS, view, h.meta(sound.CueSubmit)).Send(ctx)
}

// POST /study/sessions/:session_id/back
func (h *studyHandler) BackToFlashcards(ctx *fiber.Ctx) error {
	view, err := h.usecase.BackToFlashcards(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return h.failed(ctx, domain.STUDY_PHASE_CHANGE_FAILED, err)
	}
	return response.NewSuccess(domain.STUDY_PHASE_CHANGE_SUCCESS, view, h.meta(sound.CueNavigate)).Send(ctx)
}

// POST /study/sessions/:session_id/quiz
func (h *studyHandler) GenerateQuiz(ctx *fiber.Ctx) error {
	var req entity.GenerateQuizRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.STUDY_QUIZ_GENERATE_FAILED, err, h.logger).Send(ctx)
	}

	view, err := h.usecase.GenerateQuiz(ctx.UserContext(), ctx.Params("session_id"), req)
	if err != nil {
		return h.failed(ctx, domain.STUDY_QUIZ_GENERATE_FAILED, err)
	}
	if view.Error != "" {
		return response.NewFailed(domain.STUDY_QUIZ_GENERATE_FAILED, fiber.NewError(fiber.StatusBadGateway, view.Error), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDY_QUIZ_GENERATE_SUCCESS, view, h.meta(sound.CueSelect)).Send(ctx)
}

// POST /study/sessions/:session_id/quiz/answer
func (h *studyHandler) SelectAnswer(ctx *fiber.Ctx) error {
	var req entity.SelectAnswerRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.STUDY_QUIZ_ACTION_FAILED, err, h.logger).Send(ctx)
	}

	view, err := h.usecase.SelectAnswer(ctx.UserContext(), ctx.Params("session_id"), req)
	if err != nil {
		return h.failed(ctx, domain.STUDY_QUIZ_ACTION_FAILED, err)
	}
	return response.NewSuccess(domain.STUDY_QUIZ_ACTION_SUCCESS, view, h.meta(sound.CueSelect)).Send(ctx)
}

// POST /study/sessions/:session_id/quiz/next
func (h *studyHandler) NextQuestion(ctx *fiber.Ctx) error {
	view, err := h.usecase.NextQuestion(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return h.failed(ctx, domain.STUDY_QUIZ_ACTION_FAILED, err)
	}
	return response.NewSuccess(domain.STUDY_QUIZ_ACTION_SUCCESS, view, h.meta(sound.CueNavigate)).Send(ctx)
}

// POST /study/sessions/:session_id/quiz/prev
func (h *studyHandler) PreviousQuestion(ctx *fiber.Ctx) error {
	view, err := h.usecase.PreviousQuestion(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return h.failed(ctx, domain.STUDY_QUIZ_ACTION_FAILED, err)
	}
	return response.NewSuccess(domain.STUDY_QUIZ_ACTION_SUCCESS, view, h.meta(sound.CueNavigate)).Send(ctx)
}

// POST /study/sessions/:session_id/quiz/skip
func (h *studyHandler) SkipQuestion(ctx *fiber.Ctx) error {
	view, err := h.usecase.SkipQuestion(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return h.failed(ctx, domain.STUDY_QUIZ_ACTION_FAILED, err)
	}
	return response.NewSuccess(domain.STUDY_QUIZ_ACTION_SUCCESS, view, h.meta(h.resultCue(view))).Send(ctx)
}

// POST /study/sessions/:session_id/quiz/submit
func (h *studyHandler) SubmitQuiz(ctx *fiber.Ctx) error {
	view, err := h.usecase.SubmitQuiz(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return h.failed(ctx, domain.STUDY_QUIZ_ACTION_FAILED, err)
	}
	return response.NewSuccess(domain.STUDY_QUIZ_ACTION_SUCCESS, view, h.meta(h.resultCue(view))).Send(ctx)
}

// POST /study/sessions/:session_id/restart
func (h *studyHandler) RestartSession(ctx *fiber.Ctx) error {
	view, err := h.usecase.RestartSession(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return h.failed(ctx, domain.STUDY_PHASE_CHANGE_FAILED, err)
	}
	return response.NewSuccess(domain.STUDY_PHASE_CHANGE_SUCCESS, view, h.meta(sound.CueNavigate)).Send(ctx)
}

// GET /history
func (h *studyHandler) GetHistory(ctx *fiber.Ctx) error {
	items, err := h.usecase.History(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.STUDY_SESSION_GET_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDY_HISTORY_GET_SUCCESS, items, nil).Send(ctx)
}

// GET /preferences/theme
func (h *studyHandler) GetTheme(ctx *fiber.Ctx) error {
	theme, err := h.usecase.Theme(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.STUDY_THEME_SET_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDY_THEME_GET_SUCCESS, entity.ThemeResponse{Theme: theme}, nil).Send(ctx)
}

// PUT /preferences/theme
func (h *studyHandler) SetTheme(ctx *fiber.Ctx) error {
	var req entity.SetThemeRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.STUDY_THEME_SET_FAILED, err, h.logger).Send(ctx)
	}

	if err := h.usecase.SetTheme(ctx.UserContext(), req.Theme); err != nil {
		return response.NewFailed(domain.STUDY_THEME_SET_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}
	return response.NewSuccess(domain.STUDY_THEME_SET_SUCCESS, entity.ThemeResponse{Theme: req.Theme}, nil).Send(ctx)
}

// failed maps usecase errors onto status codes: unknown sessions are 404,
// out-of-phase actions (including mutations during generation) are 409.
func (h *studyHandler) failed(ctx *fiber.Ctx, message string, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, session.ErrInvalidTransition):
		code = fiber.StatusConflict
	}
	return response.NewFailed(message, fiber.NewError(code, err.Error()), h.logger).Send(ctx)
}

// resultCue picks the completion cue once a submission finalized, the plain
// submit cue otherwise (entering or continuing review).
func (h *studyHandler) resultCue(view *entity.SessionView) sound.Cue {
	if view.Results != nil {
		return sound.CueComplete
	}
	return sound.CueSubmit
}

func (h *studyHandler) meta(cue sound.Cue) any {
	name := h.sounds.Cue(cue)
	if name == "" {
		return nil
	}
	return fiber.Map{"sound": name}
}
