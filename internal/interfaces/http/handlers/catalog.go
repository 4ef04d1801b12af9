// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/domain/catalog"
	"github.com/your-org/storefront-client/internal/interfaces/http/middleware"
)

// CatalogHandler handles course catalog endpoints
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogService,
	}
}

// GetCourses returns the device's purchased courses, optionally grouped by grade
func (h *CatalogHandler) GetCourses(c *gin.Context) {
	ctx := c.Request.Context()
	deviceID := middleware.GetDeviceID(c)

	if c.Query("group_by") == "grade" {
		grouped, err := h.catalog.CoursesByGrade(ctx, deviceID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": grouped})
		return
	}

	courses, err := h.catalog.Courses(ctx, deviceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": courses,
	})
}

// GetCourseContent returns the lessons of one course
func (h *CatalogHandler) GetCourseContent(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	gradeID, err := strconv.ParseInt(c.Query("grade_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "grade_id is required"})
		return
	}

	subjectID, err := strconv.ParseInt(c.Query("subject_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject_id is required"})
		return
	}

	content, err := h.catalog.CourseContent(c.Request.Context(), middleware.GetDeviceID(c), courseID, gradeID, subjectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": content,
	})
}

// SubmitQuizRequest represents a quiz submission
type SubmitQuizRequest struct {
	LessonID int64        `json:"lesson_id" binding:"required"`
	ExamID   int64        `json:"exam_id" binding:"required"`
	Answers  []QuizAnswer `json:"answers" binding:"required"`
}

// QuizAnswer pairs a question with the chosen option
type QuizAnswer struct {
	QuestionID int64 `json:"question_id" binding:"required"`
	OptionID   int64 `json:"option_id"`
}

// GetQuizzes returns the exams attached to a lesson
func (h *CatalogHandler) GetQuizzes(c *gin.Context) {
	lessonID, err := strconv.ParseInt(c.Query("lesson_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lesson_id is required"})
		return
	}

	quizzes, err := h.catalog.Quizzes(c.Request.Context(), middleware.GetDeviceID(c), lessonID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": quizzes,
	})
}

// SubmitQuiz grades and submits a quiz attempt
func (h *CatalogHandler) SubmitQuiz(c *gin.Context) {
	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	answers := make(map[int64]int64, len(req.Answers))
	for _, answer := range req.Answers {
		answers[answer.QuestionID] = answer.OptionID
	}

	result, err := h.catalog.SubmitQuiz(c.Request.Context(), middleware.GetDeviceID(c), req.LessonID, req.ExamID, answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quiz submitted",
		"data":    result,
	})
}

// GetQuizDownload returns the printable-quiz URL for an exam
func (h *CatalogHandler) GetQuizDownload(c *gin.Context) {
	examID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz id"})
		return
	}

	link, err := h.catalog.QuizDownloadLink(c.Request.Context(), middleware.GetDeviceID(c), examID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"download_link": link,
		},
	})
}

// GetBlogs returns the public blog listing
func (h *CatalogHandler) GetBlogs(c *gin.Context) {
	blogs, err := h.catalog.Blogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": blogs,
	})
}
