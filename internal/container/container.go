package container

import (
	"log/slog"

	app "fragment-analyzer/internal/application"
	"fragment-analyzer/internal/domain/port"
)

type Container struct {
	AnalysisService *app.AnalysisService
	SessionService  *app.SessionService
	Loader          port.ImageLoader
	Renderer        port.OverlayRenderer
	Exporter        port.Exporter
}

func New(
	sessionRepo port.SessionRepository,
	segmenter port.Segmenter,
	loader port.ImageLoader,
	renderer port.OverlayRenderer,
	exporter port.Exporter,
	logger *slog.Logger,
) *Container {
	analysisService := app.NewAnalysisService(segmenter, logger)
	sessionService := app.NewSessionService(sessionRepo, analysisService, logger)

	return &Container{
		AnalysisService: analysisService,
		SessionService:  sessionService,
		Loader:          loader,
		Renderer:        renderer,
		Exporter:        exporter,
	}
}
