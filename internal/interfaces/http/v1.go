package http

import (
	"github.com/labstack/echo/v4"
	infra "github.com/sazonlab/campus-bff/internal/infrastructure"
	"github.com/sazonlab/campus-bff/internal/infrastructure/auth"
	"github.com/sazonlab/campus-bff/internal/progress"
)

func v1Endpoint(
	broker *progress.Broker,
	jwtUtil *auth.JWTUtil,
	CourseHandler *CourseHandler,
	ProgressHandler *ProgressHandler,
	QuizHandler *QuizHandler,
	CertificateHandler *CertificateHandler,
	CheckoutHandler *CheckoutHandler,
	jwtMiddleware echo.MiddlewareFunc,
	refreshMiddleware echo.MiddlewareFunc,
	requestIDMiddleware echo.MiddlewareFunc,
	traceLoggerMiddleware echo.MiddlewareFunc,
) *endpoint {
	authed := []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware}
	return &endpoint{
		apiVersion:  "api/v1",
		middlewares: []echo.MiddlewareFunc{requestIDMiddleware, traceLoggerMiddleware},
		groups: []*apiGroup{
			{
				prefix: "/courses",
				routes: []*route{
					{"GET", "", CourseHandler.HandleListCourses, nil},
					{"GET", "/enrolled", CourseHandler.HandleGetEnrolledCourses, authed},
					{"POST", "/:courseID/enroll", CourseHandler.HandleEnroll, authed},
					{"GET", "/:courseID", CourseHandler.HandleGetCourse, nil},
					{"GET", "/:courseID/lectures/:lectureID", CourseHandler.HandleGetLecture, authed},
					{"GET", "/:courseID/lectures/:lectureID/next", CourseHandler.HandleNextLecture, authed},
					{"GET", "/:courseID/lectures/:lectureID/videos/:videoID", CourseHandler.HandleGetVideo, authed},
					{"GET", "/:courseID/progress", ProgressHandler.HandleGetProgress, authed},
					{"POST", "/:courseID/lectures/:lectureID/complete", ProgressHandler.HandleCompleteLecture, authed},
					{"GET", "/:courseID/quizzes", QuizHandler.HandleGetQuizzes, authed},
					{"GET", "/:courseID/quizzes/:quizID", QuizHandler.HandleGetQuiz, authed},
					{"POST", "/:courseID/quizzes/:quizID/submit", QuizHandler.HandleSubmitQuiz, authed},
					{"GET", "/:courseID/certificate/status", CertificateHandler.HandleGetStatus, authed},
					{"POST", "/:courseID/certificate", CertificateHandler.HandleGenerate, authed},
				},
			},
			{
				prefix: "/certificates",
				routes: []*route{
					{"GET", "", CertificateHandler.HandleList, authed},
					{"GET", "/verify/:certificateID", CertificateHandler.HandleVerify, nil},
				},
			},
			{
				prefix:      "/checkout",
				middlewares: authed,
				routes: []*route{
					{"POST", "/session", CheckoutHandler.HandleSaveSession, nil},
					{"GET", "/session", CheckoutHandler.HandleGetSession, nil},
					{"DELETE", "/session", CheckoutHandler.HandleClearSession, nil},
				},
			},
			{
				prefix: "/ws",
				routes: []*route{
					{"GET", "/progress", infra.WithHeartbeat(HandleProgressFeed(broker, jwtUtil)), authed},
				},
			},
		},
	}
}
