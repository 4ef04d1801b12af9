// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/infrastructure/portal"
	"github.com/your-org/storefront-client/internal/pkg/apperrors"
)

// ErrQuizNotFound is returned when a lesson has no exam with the given id
var ErrQuizNotFound = errors.New("quiz not found")

// Sessions is the slice of the session manager the catalog needs
type Sessions interface {
	Token(ctx context.Context, deviceID string) (string, error)
	Invalidate(ctx context.Context, deviceID string)
}

// Portal is the slice of the portal client the catalog needs
type Portal interface {
	Courses(ctx context.Context, token string) ([]portal.Course, error)
	CourseContent(ctx context.Context, token string, courseID, gradeID, subjectID int64) (*portal.CourseContent, error)
	Quizzes(ctx context.Context, token string, lessonID int64) ([]portal.Quiz, error)
	SubmitQuiz(ctx context.Context, token string, submission *portal.QuizSubmission) error
	QuizDownloadLink(ctx context.Context, token string, examID int64) (string, error)
	Blogs(ctx context.Context) ([]portal.Blog, error)
}

// QuizResult summarizes a graded quiz submission
type QuizResult struct {
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
	Passed  bool `json:"passed"` // every answer correct
}

// Service handles bearer-authenticated catalog reads
type Service struct {
	sessions Sessions
	portal   Portal
	logger   *logrus.Logger
}

// NewService creates a new catalog service
func NewService(sessions Sessions, portalClient Portal, logger *logrus.Logger) *Service {
	return &Service{
		sessions: sessions,
		portal:   portalClient,
		logger:   logger,
	}
}

// Courses returns the purchased course catalog for the device's session
func (s *Service) Courses(ctx context.Context, deviceID string) ([]portal.Course, error) {
	token, err := s.sessions.Token(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	courses, err := s.portal.Courses(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthenticationRequired) {
			s.sessions.Invalidate(ctx, deviceID)
		}
		return nil, err
	}
	return courses, nil
}

// CoursesByGrade groups the catalog by grade name for display
func (s *Service) CoursesByGrade(ctx context.Context, deviceID string) (map[string][]portal.Course, error) {
	courses, err := s.Courses(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	organized := make(map[string][]portal.Course)
	for _, course := range courses {
		organized[course.GradeName] = append(organized[course.GradeName], course)
	}
	return organized, nil
}

// CourseContent returns the lessons of one course
func (s *Service) CourseContent(ctx context.Context, deviceID string, courseID, gradeID, subjectID int64) (*portal.CourseContent, error) {
	token, err := s.sessions.Token(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	content, err := s.portal.CourseContent(ctx, token, courseID, gradeID, subjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthenticationRequired) {
			s.sessions.Invalidate(ctx, deviceID)
		}
		return nil, err
	}
	return content, nil
}

// Quizzes returns the exams attached to a lesson
func (s *Service) Quizzes(ctx context.Context, deviceID string, lessonID int64) ([]portal.Quiz, error) {
	token, err := s.sessions.Token(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.portal.Quizzes(ctx, token, lessonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthenticationRequired) {
			s.sessions.Invalidate(ctx, deviceID)
		}
		return nil, err
	}
	return quizzes, nil
}

// SubmitQuiz grades the chosen options against the exam's answer key and
// submits the result. answers maps question id to the selected option id;
// unanswered questions count as wrong.
func (s *Service) SubmitQuiz(ctx context.Context, deviceID string, lessonID, examID int64, answers map[int64]int64) (*QuizResult, error) {
	token, err := s.sessions.Token(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.portal.Quizzes(ctx, token, lessonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthenticationRequired) {
			s.sessions.Invalidate(ctx, deviceID)
		}
		return nil, err
	}

	var exam *portal.Quiz
	for i := range quizzes {
		if quizzes[i].ExamID == examID {
			exam = &quizzes[i]
			break
		}
	}
	if exam == nil || len(exam.Questions) == 0 {
		return nil, apperrors.Wrap(ErrQuizNotFound, "lesson %d has no exam %d", lessonID, examID)
	}

	result := &QuizResult{Total: len(exam.Questions)}
	graded := make([]portal.QuizAnswer, 0, len(exam.Questions))
	for _, question := range exam.Questions {
		optionID := answers[question.QuestionID]

		passed := 0
		for _, option := range question.Options {
			if option.OptionID == optionID && strings.EqualFold(option.IsCorrectAnswer, "yes") {
				passed = 1
				result.Correct++
				break
			}
		}

		graded = append(graded, portal.QuizAnswer{
			ExamID:     exam.ExamID,
			QuestionID: question.QuestionID,
			OptionID:   optionID,
			IsPassed:   passed,
		})
	}
	result.Passed = result.Correct == result.Total

	submission := &portal.QuizSubmission{
		LessonID:  lessonID,
		Questions: graded,
		UUID:      uuid.New().String(),
	}
	if err := s.portal.SubmitQuiz(ctx, token, submission); err != nil {
		if errors.Is(err, apperrors.ErrAuthenticationRequired) {
			s.sessions.Invalidate(ctx, deviceID)
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"device_id": deviceID,
		"lesson_id": lessonID,
		"exam_id":   examID,
		"correct":   result.Correct,
		"total":     result.Total,
	}).Info("Quiz submitted")

	return result, nil
}

// QuizDownloadLink returns the printable-quiz URL for an exam
func (s *Service) QuizDownloadLink(ctx context.Context, deviceID string, examID int64) (string, error) {
	token, err := s.sessions.Token(ctx, deviceID)
	if err != nil {
		return "", err
	}

	link, err := s.portal.QuizDownloadLink(ctx, token, examID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthenticationRequired) {
			s.sessions.Invalidate(ctx, deviceID)
		}
		return "", err
	}
	return link, nil
}

// Blogs returns the public blog listing. No session is required.
func (s *Service) Blogs(ctx context.Context) ([]portal.Blog, error) {
	return s.portal.Blogs(ctx)
}
