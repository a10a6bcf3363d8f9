package config

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lennyai/lenny-be/internal/delivery/http/handler"
	"github.com/lennyai/lenny-be/internal/delivery/http/middleware"
	"github.com/lennyai/lenny-be/internal/delivery/http/repository"
	"github.com/lennyai/lenny-be/internal/delivery/http/route"
	"github.com/lennyai/lenny-be/internal/delivery/http/usecase"
	"github.com/lennyai/lenny-be/internal/pkg/llm"
	"github.com/lennyai/lenny-be/internal/pkg/sound"
	"github.com/lennyai/lenny-be/internal/pkg/validate"
	"github.com/lennyai/lenny-be/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Ctx       context.Context
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator
}

func Bootstrap(config *BootstrapConfig) {

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	apiKey := ""
	textModel := ""
	imageModel := ""
	if config.Config != nil {
		apiKey = config.Config.GetString("llm.gemini.api_key")
		textModel = config.Config.GetString("llm.gemini.text_model")
		imageModel = config.Config.GetString("llm.gemini.image_model")
	}

	gemini, err := llm.NewGeminiClient(config.Ctx, apiKey, textModel, imageModel, config.Log)
	if err != nil {
		config.Log.Fatalf("Failed to create Gemini client: %v", err)
	}

	sessions := session.NewStore()
	startSessionJanitor(config.Ctx, sessions, config.Config, config.Log)

	sounds := sound.NewService(config.Config == nil || config.Config.GetBool("sound.enabled"))

	historyRepo := repository.NewHistoryRepository(config.DB)
	studyUsecase := usecase.NewStudyUsecase(usecase.StudyConfig{
		DB:         config.DB,
		Gateway:    gemini,
		Repository: historyRepo,
		Sessions:   sessions,
		Log:        config.Log,
		Config:     config.Config,
	})
	studyHandler := handler.NewStudyHandler(config.Validator, config.Log, studyUsecase, sounds)

	route.Setup(&route.RouteConfig{
		Api:          config.Api,
		Middleware:   mid,
		StudyHandler: studyHandler,
	})

}

// startSessionJanitor evicts sessions idle beyond session.idle_ttl on a
// fixed sweep interval. The goroutine exits with the application context.
func startSessionJanitor(ctx context.Context, sessions *session.Store, config *viper.Viper, log *logrus.Logger) {
	idleTTL := 2 * time.Hour
	if config != nil {
		if v := config.GetDuration("session.idle_ttl"); v > 0 {
			idleTTL = v
		}
	}

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessions.Purge(idleTTL); n > 0 {
					log.Infof("Purged %d idle study sessions", n)
				}
			}
		}
	}()
}
