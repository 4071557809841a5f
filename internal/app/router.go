package app

import (
	"school_exam_backend/docs"
	"school_exam_backend/internal/config"
	"school_exam_backend/internal/middleware"
	"school_exam_backend/internal/model"
	"school_exam_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profil", c.profile.Show)
		authGroup.PUT("/profil", c.profile.Update)
		authGroup.POST("/profil/avatar", c.profile.UploadAvatar)

		a.registerAdminRoutes(authGroup, c)
		a.registerStaffRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
	}
}

// registerAdminRoutes covers account and class administration.
func (a *App) registerAdminRoutes(api *gin.RouterGroup, c *controllers) {
	admin := api.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/guru", c.teacher.Index)
		admin.POST("/guru", c.teacher.Store)
		admin.PUT("/guru/:id", c.teacher.Update)
		admin.DELETE("/guru/:id", c.teacher.Destroy)

		admin.GET("/kelas", c.class.Index)
		admin.POST("/kelas", c.class.Store)
		admin.GET("/kelas/:kelasId", c.class.Show)
		admin.PUT("/kelas/:kelasId", c.class.Update)
		admin.DELETE("/kelas/:kelasId", c.class.Destroy)

		admin.GET("/kelas/:kelasId/siswa", c.student.Index)
		admin.POST("/kelas/:kelasId/siswa", c.student.Store)
		admin.PUT("/kelas/:kelasId/siswa/:id", c.student.Update)
		admin.DELETE("/kelas/:kelasId/siswa/:id", c.student.Destroy)
	}
}

// registerStaffRoutes covers the curriculum and result review surface
// shared by teachers and admins. Ownership checks inside the services
// narrow teachers to their own competencies.
func (a *App) registerStaffRoutes(api *gin.RouterGroup, c *controllers) {
	staff := api.Group("")
	staff.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		staff.GET("/siswa", c.student.Roster)

		staff.GET("/kompetensi", c.competency.Index)
		staff.POST("/kompetensi", c.competency.Store)
		staff.GET("/kompetensi/:slug", c.competency.Show)
		staff.PUT("/kompetensi/:slug", c.competency.Update)
		staff.DELETE("/kompetensi/:slug", c.competency.Destroy)

		staff.GET("/kompetensi/:slug/pertanyaan", c.question.Index)
		staff.POST("/kompetensi/:slug/pertanyaan", c.question.Store)
		staff.GET("/kompetensi/:slug/pertanyaan/:pertanyaanId", c.question.Show)
		staff.PUT("/kompetensi/:slug/pertanyaan/:pertanyaanId", c.question.Update)
		staff.DELETE("/kompetensi/:slug/pertanyaan/:pertanyaanId", c.question.Destroy)

		staff.GET("/kompetensi/:slug/pertanyaan/:pertanyaanId/butir-jawaban", c.answer.Index)
		staff.POST("/kompetensi/:slug/pertanyaan/:pertanyaanId/butir-jawaban", c.answer.Store)
		staff.PUT("/kompetensi/:slug/pertanyaan/:pertanyaanId/butir-jawaban/:butirId", c.answer.Update)
		staff.DELETE("/kompetensi/:slug/pertanyaan/:pertanyaanId/butir-jawaban/:butirId", c.answer.Destroy)

		staff.POST("/kompetensi/:slug/pertanyaan/:pertanyaanId/kunci-jawaban", c.key.Store)
		staff.DELETE("/kompetensi/:slug/pertanyaan/:pertanyaanId/kunci-jawaban", c.key.Destroy)

		staff.GET("/hasil-tes/:slug", c.result.Index)
		staff.GET("/hasil-tes/:slug/ekspor", c.result.Export)
		staff.GET("/hasil-tes/:slug/hasil/:hasilId", c.result.Show)
	}
}

func (a *App) registerStudentRoutes(api *gin.RouterGroup, c *controllers) {
	student := api.Group("")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/tes/:slug", c.exam.Show)
		student.POST("/tes/:slug/mulai", c.exam.Start)
		student.POST("/tes/:slug", c.exam.Submit)

		student.GET("/hasil-tes-saya", c.exam.Results)
		student.GET("/hasil-tes-saya/:hasilId", c.exam.ResultDetail)
	}
}
