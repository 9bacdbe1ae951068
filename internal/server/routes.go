package server

import (
	"github.com/privatetune/backend/internal/server/middleware"
	"github.com/privatetune/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Document routes
	apiRoutes.GET("/documents", routes.GetDocumentsHandler)
	apiRoutes.POST("/documents", routes.UploadDocumentHandler, middleware.RequirePermission("document.upload"))
	apiRoutes.DELETE("/documents/:id", routes.DeleteDocumentHandler, middleware.RequirePermission("document.delete"))
	apiRoutes.POST("/documents/:id/process", routes.ReprocessDocumentHandler, middleware.RequirePermission("document.upload"))
	apiRoutes.GET("/documents/:id/download", routes.GetDocumentDownloadHandler)

	// Knowledge point routes
	apiRoutes.GET("/knowledge-points", routes.GetKnowledgePointsHandler)
	apiRoutes.POST("/knowledge-points", routes.CreateKnowledgePointHandler, middleware.RequirePermission("knowledge.create"))
	apiRoutes.PATCH("/knowledge-points/:id", routes.EditKnowledgePointHandler, middleware.RequirePermission("knowledge.update"))
	apiRoutes.PATCH("/knowledge-points/:id/keywords", routes.EditKnowledgePointKeywordsHandler, middleware.RequirePermission("knowledge.update"))
	apiRoutes.POST("/knowledge-points/delete", routes.DeleteKnowledgePointsHandler, middleware.RequirePermission("knowledge.delete"))
	apiRoutes.POST("/knowledge-points/search", routes.SearchKnowledgePointsHandler)

	// Graph routes
	apiRoutes.GET("/graph", routes.GetGraphHandler)
	apiRoutes.GET("/graph/layout", routes.GetGraphLayoutHandler)
	apiRoutes.GET("/graph/render", routes.GetGraphRenderHandler)

	// Fine-tuning routes
	apiRoutes.GET("/finetune", routes.GetFinetuneJobsHandler)
	apiRoutes.POST("/finetune", routes.CreateFinetuneJobHandler, middleware.RequirePermission("finetune.create"))
	apiRoutes.POST("/finetune/estimate", routes.EstimateFinetuneHandler)
	apiRoutes.GET("/finetune/:job_id", routes.GetFinetuneJobHandler)
	apiRoutes.DELETE("/finetune/:job_id", routes.CancelFinetuneJobHandler, middleware.RequirePermission("finetune.cancel"))

	// Usage metrics
	apiRoutes.GET("/metrics", routes.GetMetricsHandler)
}
