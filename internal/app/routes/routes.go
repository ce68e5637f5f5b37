// Package routes wires controllers onto the HTTP router.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/prasadasw/examportal/internal/app/controllers"
	"github.com/prasadasw/examportal/internal/middleware"
	"github.com/prasadasw/examportal/internal/pkg/auth"
)

// Controllers groups everything the router needs.
type Controllers struct {
	Auth       *controllers.AuthController
	Program    *controllers.ProgramController
	Test       *controllers.TestController
	Question   *controllers.QuestionController
	Enrollment *controllers.EnrollmentController
	Submission *controllers.SubmissionController
	Review     *controllers.ReviewController
	Enquiry    *controllers.EnquiryController
}

// Setup registers all routes on the engine.
func Setup(engine *gin.Engine, c Controllers, authMw *middleware.AuthMiddleware) {
	engine.Use(middleware.CORS(), middleware.RequestLogger())

	v1 := engine.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/student/register", c.Auth.RegisterStudent)
		authGroup.POST("/student/login", c.Auth.LoginStudent)
		authGroup.POST("/admin/login", c.Auth.LoginAdmin)
		authGroup.GET("/student/profile",
			authMw.JWTAuth(), authMw.RoleRequired(auth.RoleStudent), c.Auth.Profile)
	}

	// Public catalog reads and enquiry intake
	v1.GET("/programs", c.Program.List)
	v1.GET("/programs/:id", c.Program.Get)
	v1.GET("/tests", c.Test.List)
	v1.GET("/tests/:id", c.Test.Get)
	v1.POST("/enquiries", c.Enquiry.Create)

	student := v1.Group("", authMw.JWTAuth(), authMw.RoleRequired(auth.RoleStudent))
	{
		student.POST("/enrollments", c.Enrollment.Request)
		student.GET("/enrollments/my", c.Enrollment.ListMine)
		student.GET("/enrollments/access/:testId", c.Enrollment.CheckAccess)

		student.POST("/submissions/start/:testId", c.Submission.Start)
		student.POST("/submissions/:id/submit", c.Submission.Submit)
		student.GET("/submissions/status/:testId", c.Submission.Status)
		student.GET("/submissions/:id/answers", c.Submission.SubmittedAnswers)
		student.GET("/submissions/my-results", c.Submission.MyResults)
	}

	admin := v1.Group("/admin", authMw.JWTAuth(), authMw.RoleRequired(auth.RoleAdmin))
	{
		admin.POST("/programs", c.Program.Create)
		admin.PUT("/programs/:id", c.Program.Update)
		admin.DELETE("/programs/:id", c.Program.Delete)

		admin.POST("/tests", c.Test.Create)
		admin.PUT("/tests/:id", c.Test.Update)
		admin.DELETE("/tests/:id", c.Test.Delete)
		admin.GET("/tests/:testId/questions", c.Question.ListByTest)

		admin.POST("/questions", c.Question.Create)
		admin.DELETE("/questions/:id", c.Question.Delete)

		admin.GET("/enrollments", c.Enrollment.ListAll)
		admin.PUT("/enrollments/:id/decide", c.Enrollment.Decide)

		admin.GET("/submissions", c.Review.List)
		admin.GET("/submissions/stats", c.Review.Stats)
		admin.GET("/submissions/:id", c.Review.Detail)
		admin.PUT("/submissions/:id/review", c.Review.Review)
		admin.PUT("/submissions/:id/release", c.Review.Release)

		admin.GET("/students", c.Auth.ListStudents)
		admin.POST("/admins", c.Auth.RegisterAdmin)
		admin.GET("/admins", c.Auth.ListAdmins)

		admin.GET("/enquiries", c.Enquiry.List)
		admin.DELETE("/enquiries/:id", c.Enquiry.Delete)
	}
}
