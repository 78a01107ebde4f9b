package routes

import (
	"bughub/config"
	"bughub/controllers"
	middlewares "bughub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Setup wires CORS and every route group onto the engine.
func Setup(r *gin.Engine, cfg config.Config, auth *controllers.AuthController, reports *controllers.ReportController) {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-api-key"},
		AllowCredentials: true,
	}
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		// Reflect whatever origin called us, the way the admin panel's
		// dev server expects.
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	}
	r.Use(cors.New(corsCfg))

	authenticate := middlewares.Authenticate([]byte(cfg.JWTSecret), auth.LookupUser)

	SetupAuthRoutes(r, auth, authenticate)
	SetupReportRoutes(r, cfg, reports, authenticate)
}

// SetupAuthRoutes registers the /api/auth group.
func SetupAuthRoutes(r *gin.Engine, auth *controllers.AuthController, authenticate gin.HandlerFunc) {
	group := r.Group("/api/auth")
	group.POST("/register", auth.Register)
	group.POST("/login", auth.Login)
	group.GET("/verify", authenticate, auth.Verify)
	group.GET("/users", authenticate, middlewares.AdminOnly(), auth.GetAllUsers)
	group.PATCH("/users/:id", authenticate, middlewares.AdminOnly(), auth.UpdateUser)
}

// SetupReportRoutes registers the /api/feedback group. Submission comes
// from the embedded widget with an API key; everything else is the
// token-authenticated admin panel.
func SetupReportRoutes(r *gin.Engine, cfg config.Config, reports *controllers.ReportController, authenticate gin.HandlerFunc) {
	group := r.Group("/api/feedback")
	group.POST("", middlewares.APIKeyAuth(cfg.APIKey), reports.CreateReport)
	group.GET("", authenticate, reports.GetReports)
	group.GET("/projects", authenticate, reports.GetProjectNames)
	group.PATCH("/:id", authenticate, reports.UpdateReport)
	group.DELETE("/:id", authenticate, reports.DeleteReport)
}
