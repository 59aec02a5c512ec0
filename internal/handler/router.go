package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/middleware"
)

// Routes собирает обработчики и middleware, необходимые для регистрации маршрутов
type Routes struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Subjects *SubjectHandler
	Question *QuestionHandler
	Options  *OptionHandler
	Status   *StatusHandler

	AuthMiddleware *middleware.AuthMiddleware
	// LoginLimit ограничивает частоту попыток входа; nil отключает ограничение
	LoginLimit gin.HandlerFunc
}

// Register настраивает маршруты API на router.
// Все маршруты, кроме регистрации, входа и статуса, требуют действительной сессии.
func (r *Routes) Register(router gin.IRouter) {
	requireAuth := r.AuthMiddleware.RequireAuth()

	api := router.Group("/api")
	{
		status := api.Group("/status")
		{
			status.GET("", r.Status.Status)
			status.GET("/database", r.Status.Database)
		}

		session := api.Group("/session")
		{
			login := []gin.HandlerFunc{r.Auth.Login}
			if r.LoginLimit != nil {
				login = append([]gin.HandlerFunc{r.LoginLimit}, login...)
			}
			session.POST("", login...)

			authed := session.Group("")
			authed.Use(requireAuth)
			{
				authed.GET("", r.Auth.ListSessions)
				authed.POST("/logout", r.Auth.Logout)
				authed.POST("/logout-all", r.Auth.LogoutAll)
			}
		}

		users := api.Group("/users")
		{
			users.POST("", r.Users.Register)

			authed := users.Group("")
			authed.Use(requireAuth)
			{
				authed.GET("", r.Users.List)
				authed.GET("/me", r.Users.GetMe)
				authed.PUT("/me", r.Users.UpdateMe)
				authed.DELETE("/me", r.Users.DeleteMe)
				authed.GET("/:id", middleware.ExtractUUIDParam("id", "userID"), r.Users.GetByID)
			}
		}

		subjects := api.Group("/subjects")
		subjects.Use(requireAuth)
		{
			subjects.POST("", r.Subjects.Create)
			subjects.GET("", r.Subjects.List)

			withID := subjects.Group("/:id")
			withID.Use(middleware.ExtractUUIDParam("id", "subjectID"))
			{
				withID.GET("", r.Subjects.Get)
				withID.PUT("", r.Subjects.Update)
				withID.DELETE("", r.Subjects.Delete)
			}
		}

		questions := api.Group("/questions")
		questions.Use(requireAuth)
		{
			questions.POST("", r.Question.Create)
			questions.GET("", r.Question.List)
			questions.GET("/export", r.Question.ExportQuestions)

			withID := questions.Group("/:id")
			withID.Use(middleware.ExtractUUIDParam("id", "questionID"))
			{
				withID.GET("", r.Question.Get)
				withID.PUT("", r.Question.Update)
				withID.DELETE("", r.Question.Delete)

				withID.POST("/options", r.Options.Create)
				withID.GET("/options", r.Options.List)

				option := withID.Group("/options/:optionId")
				option.Use(middleware.ExtractUUIDParam("optionId", "optionID"))
				{
					option.PUT("", r.Options.Update)
					option.DELETE("", r.Options.Delete)
				}
			}
		}
	}
}
