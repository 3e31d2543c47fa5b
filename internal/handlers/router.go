package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

type HandlerManager struct {
	userHandler       *UserHandler
	courseHandler     *CourseHandler
	moduleHandler     *ModuleHandler
	lessonHandler     *LessonHandler
	assignmentHandler *AssignmentHandler
	submissionHandler *SubmissionHandler
	enrollmentHandler *EnrollmentHandler
	studentHandler    *StudentHandler
	dashboardHandler  *DashboardHandler
	mediaHandler      *MediaHandler
	serviceManager    services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		userHandler:       NewUserHandler(serviceManager.User(), logger),
		courseHandler:     NewCourseHandler(serviceManager.Course(), logger),
		moduleHandler:     NewModuleHandler(serviceManager.Module(), logger),
		lessonHandler:     NewLessonHandler(serviceManager.Lesson(), logger),
		assignmentHandler: NewAssignmentHandler(serviceManager.Assignment(), logger),
		submissionHandler: NewSubmissionHandler(serviceManager.Submission(), serviceManager.Grading(), logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		studentHandler:    NewStudentHandler(serviceManager.Student(), logger),
		dashboardHandler:  NewDashboardHandler(serviceManager.Dashboard(), logger),
		mediaHandler:      NewMediaHandler(serviceManager.Media(), logger),
		serviceManager:    serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Users & auth
		api.POST("/register", hm.userHandler.Register)
		api.POST("/login", hm.userHandler.Login)
		api.GET("/users", hm.userHandler.ListUsers)
		api.GET("/users/:id", hm.userHandler.GetUser)

		// Courses
		courses := api.Group("/courses")
		{
			courses.GET("", hm.courseHandler.ListCourses)
			courses.POST("", hm.courseHandler.CreateCourse)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.PUT("/:id", hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.courseHandler.DeleteCourse)
			courses.GET("/:id/students", hm.courseHandler.ListCourseStudents)
			courses.GET("/:id/modules", hm.moduleHandler.ListModules)
			courses.POST("/:id/modules", hm.moduleHandler.CreateModule)
		}
		api.GET("/instructors/:id/courses", hm.courseHandler.ListInstructorCourses)

		// Modules
		modules := api.Group("/modules")
		{
			modules.PUT("/:id", hm.moduleHandler.UpdateModule)
			modules.DELETE("/:id", hm.moduleHandler.DeleteModule)
			modules.GET("/:id/lessons", hm.lessonHandler.ListLessons)
			modules.POST("/:id/lessons", hm.lessonHandler.CreateLesson)
			modules.GET("/:id/assignments", hm.assignmentHandler.ListAssignments)
			modules.POST("/:id/assignments", hm.assignmentHandler.CreateAssignment)
		}

		// Lessons; POST on the detail route is an update for form clients
		lessons := api.Group("/lessons")
		{
			lessons.GET("/:id", hm.lessonHandler.GetLesson)
			lessons.PUT("/:id", hm.lessonHandler.UpdateLesson)
			lessons.POST("/:id", hm.lessonHandler.UpdateLesson)
			lessons.DELETE("/:id", hm.lessonHandler.DeleteLesson)
			lessons.POST("/:id/complete", hm.enrollmentHandler.CompleteLesson)
		}

		// Assignments & submissions
		assignments := api.Group("/assignments")
		{
			assignments.GET("/:id", hm.assignmentHandler.GetAssignment)
			assignments.PUT("/:id", hm.assignmentHandler.UpdateAssignment)
			assignments.POST("/:id", hm.assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:id", hm.assignmentHandler.DeleteAssignment)
			assignments.GET("/:id/submissions", hm.submissionHandler.ListSubmissions)
			assignments.POST("/:id/submissions", hm.submissionHandler.SubmitAssignment)
			assignments.GET("/:id/my_submission", hm.submissionHandler.GetMySubmission)
			assignments.GET("/:id/gradebook.xlsx", hm.submissionHandler.ExportGradebook)
		}
		api.POST("/submissions/:id/grade", hm.submissionHandler.GradeSubmission)
		api.PUT("/submissions/:id/grade", hm.submissionHandler.GradeSubmission)

		// Enrollment & student views
		api.POST("/enroll", hm.enrollmentHandler.Enroll)
		api.POST("/unenroll", hm.enrollmentHandler.Unenroll)
		api.GET("/students/:id/courses", hm.studentHandler.GetStudentCourses)
		api.GET("/students/:id/timeline", hm.studentHandler.GetStudentTimeline)

		api.GET("/instructor/dashboard", hm.dashboardHandler.GetInstructorDashboard)
		api.GET("/proxy_download", hm.mediaHandler.ProxyDownload)
	}

	router.GET("/health", hm.health)
}

func (hm *HandlerManager) health(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "course-service",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "course-service",
	})
}
