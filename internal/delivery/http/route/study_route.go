package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lennyai/lenny-be/internal/delivery/http/handler"
	"github.com/lennyai/lenny-be/internal/delivery/http/middleware"
)

func SetupStudyRoute(api *fiber.App, handler handler.StudyHandler, m *middleware.Middleware) {
	studyRouter := api.Group("/study")
	{
		studyRouter.Post("/sessions", handler.CreateSession)
		studyRouter.Get("/sessions/:session_id", handler.GetSession)
		studyRouter.Post("/sessions/:session_id/flashcards", handler.GenerateFlashcards)
		studyRouter.Post("/sessions/:session_id/ready", handler.ReadyForQuiz)
		studyRouter.Post("/sessions/:session_id/back", handler.BackToFlashcards)
		studyRouter.Post("/sessions/:session_id/quiz", handler.GenerateQuiz)
		studyRouter.Post("/sessions/:session_id/quiz/answer", handler.SelectAnswer)
		studyRouter.Post("/sessions/:session_id/quiz/next", handler.NextQuestion)
		studyRouter.Post("/sessions/:session_id/quiz/prev", handler.PreviousQuestion)
		studyRouter.Post("/sessions/:session_id/quiz/skip", handler.SkipQuestion)
		studyRouter.Post("/sessions/:session_id/quiz/submit", handler.SubmitQuiz)
		studyRouter.Post("/sessions/:session_id/restart", handler.RestartSession)
	}

	historyRouter := api.Group("/history")
	{
		historyRouter.Get("/", handler.GetHistory)
	}

	preferencesRouter := api.Group("/preferences")
	{
		preferencesRouter.Get("/theme", handler.GetTheme)
		preferencesRouter.Put("/theme", handler.SetTheme)
	}
}
