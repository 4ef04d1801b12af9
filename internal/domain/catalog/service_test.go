package catalog

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/infrastructure/portal"
	"github.com/your-org/storefront-client/internal/pkg/apperrors"
)

type mockSessions struct {
	token       string
	tokenErr    error
	invalidated []string
}

func (m *mockSessions) Token(ctx context.Context, deviceID string) (string, error) {
	return m.token, m.tokenErr
}

func (m *mockSessions) Invalidate(ctx context.Context, deviceID string) {
	m.invalidated = append(m.invalidated, deviceID)
}

type mockPortal struct {
	courses       []portal.Course
	coursesErr    error
	content       *portal.CourseContent
	contentErr    error
	quizzes       []portal.Quiz
	quizzesErr    error
	submitErr     error
	submission    *portal.QuizSubmission
	downloadLink  string
	downloadErr   error
	blogs         []portal.Blog
	gotToken      string
	gotLessonID   int64
}

func (m *mockPortal) Courses(ctx context.Context, token string) ([]portal.Course, error) {
	m.gotToken = token
	return m.courses, m.coursesErr
}

func (m *mockPortal) CourseContent(ctx context.Context, token string, courseID, gradeID, subjectID int64) (*portal.CourseContent, error) {
	m.gotToken = token
	return m.content, m.contentErr
}

func (m *mockPortal) Quizzes(ctx context.Context, token string, lessonID int64) ([]portal.Quiz, error) {
	m.gotToken = token
	m.gotLessonID = lessonID
	return m.quizzes, m.quizzesErr
}

func (m *mockPortal) SubmitQuiz(ctx context.Context, token string, submission *portal.QuizSubmission) error {
	m.gotToken = token
	m.submission = submission
	return m.submitErr
}

func (m *mockPortal) QuizDownloadLink(ctx context.Context, token string, examID int64) (string, error) {
	m.gotToken = token
	return m.downloadLink, m.downloadErr
}

func (m *mockPortal) Blogs(ctx context.Context) ([]portal.Blog, error) {
	return m.blogs, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestService_CoursesUsesSessionToken(t *testing.T) {
	sessions := &mockSessions{token: "tok-1"}
	backend := &mockPortal{courses: []portal.Course{
		{CourseID: 1, FullCourseName: "Preschool Math", GradeName: "Preschool", SubjectName: "Math"},
	}}
	service := NewService(sessions, backend, testLogger())

	courses, err := service.Courses(context.Background(), "device-1")
	require.NoError(t, err)

	assert.Equal(t, "tok-1", backend.gotToken)
	require.Len(t, courses, 1)
	assert.Equal(t, "Preschool Math", courses[0].FullCourseName)
}

func TestService_CoursesWithoutSession(t *testing.T) {
	sessions := &mockSessions{tokenErr: apperrors.ErrAuthenticationRequired}
	service := NewService(sessions, &mockPortal{}, testLogger())

	_, err := service.Courses(context.Background(), "device-1")
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)
	assert.Empty(t, sessions.invalidated)
}

func TestService_CoursesRejectedTokenInvalidatesSession(t *testing.T) {
	sessions := &mockSessions{token: "stale"}
	backend := &mockPortal{coursesErr: apperrors.ErrAuthenticationRequired}
	service := NewService(sessions, backend, testLogger())

	_, err := service.Courses(context.Background(), "device-1")
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)
	assert.Equal(t, []string{"device-1"}, sessions.invalidated)
}

func TestService_CoursesServerErrorKeepsSession(t *testing.T) {
	sessions := &mockSessions{token: "tok-1"}
	backend := &mockPortal{coursesErr: apperrors.ErrServer}
	service := NewService(sessions, backend, testLogger())

	_, err := service.Courses(context.Background(), "device-1")
	assert.ErrorIs(t, err, apperrors.ErrServer)
	assert.Empty(t, sessions.invalidated)
}

func TestService_CoursesByGrade(t *testing.T) {
	sessions := &mockSessions{token: "tok-1"}
	backend := &mockPortal{courses: []portal.Course{
		{CourseID: 1, FullCourseName: "Preschool Math", GradeName: "Preschool", SubjectName: "Math"},
		{CourseID: 2, FullCourseName: "Preschool Reading", GradeName: "Preschool", SubjectName: "Reading"},
		{CourseID: 3, FullCourseName: "Grade 1 Math", GradeName: "Grade 1", SubjectName: "Math"},
	}}
	service := NewService(sessions, backend, testLogger())

	grouped, err := service.CoursesByGrade(context.Background(), "device-1")
	require.NoError(t, err)

	require.Len(t, grouped, 2)
	assert.Len(t, grouped["Preschool"], 2)
	assert.Len(t, grouped["Grade 1"], 1)
}

func TestService_CourseContent(t *testing.T) {
	sessions := &mockSessions{token: "tok-1"}
	backend := &mockPortal{content: &portal.CourseContent{
		Lessons: []portal.Lesson{{LessonID: 1, Unit: "Unit 1"}},
	}}
	service := NewService(sessions, backend, testLogger())

	content, err := service.CourseContent(context.Background(), "device-1", 3, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, "tok-1", backend.gotToken)
	require.Len(t, content.Lessons, 1)
	assert.Equal(t, "Unit 1", content.Lessons[0].Unit)
}

func lessonQuiz() portal.Quiz {
	return portal.Quiz{
		ExamID:   4,
		ExamName: "Unit 1 Quiz",
		Questions: []portal.QuizQuestion{
			{
				QuestionID:   100,
				QuestionName: "Which letter comes first?",
				Options: []portal.QuizOption{
					{OptionID: 1, OptionName: "A", IsCorrectAnswer: "Yes"},
					{OptionID: 2, OptionName: "B", IsCorrectAnswer: "No"},
				},
			},
			{
				QuestionID:   101,
				QuestionName: "Which letter comes last?",
				Options: []portal.QuizOption{
					{OptionID: 3, OptionName: "Y", IsCorrectAnswer: "No"},
					{OptionID: 4, OptionName: "Z", IsCorrectAnswer: "Yes"},
				},
			},
		},
	}
}

func TestService_Quizzes(t *testing.T) {
	sessions := &mockSessions{token: "tok-1"}
	backend := &mockPortal{quizzes: []portal.Quiz{lessonQuiz()}}
	service := NewService(sessions, backend, testLogger())

	quizzes, err := service.Quizzes(context.Background(), "device-1", 9)
	require.NoError(t, err)

	assert.Equal(t, "tok-1", backend.gotToken)
	assert.Equal(t, int64(9), backend.gotLessonID)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "Unit 1 Quiz", quizzes[0].ExamName)
}

func TestService_QuizzesRejectedTokenInvalidatesSession(t *testing.T) {
	sessions := &mockSessions{token: "stale"}
	backend := &mockPortal{quizzesErr: apperrors.ErrAuthenticationRequired}
	service := NewService(sessions, backend, testLogger())

	_, err := service.Quizzes(context.Background(), "device-1", 9)
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)
	assert.Equal(t, []string{"device-1"}, sessions.invalidated)
}

func TestService_SubmitQuizGradesAnswers(t *testing.T) {
	sessions := &mockSessions{token: "tok-1"}
	backend := &mockPortal{quizzes: []portal.Quiz{lessonQuiz()}}
	service := NewService(sessions, backend, testLogger())

	// First answer right, second wrong
	result, err := service.SubmitQuiz(context.Background(), "device-1", 9, 4, map[int64]int64{
		100: 1,
		101: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 2, result.Total)
	assert.False(t, result.Passed)

	require.NotNil(t, backend.submission)
	assert.Equal(t, int64(9), backend.submission.LessonID)
	assert.NotEmpty(t, backend.submission.UUID)
	require.Len(t, backend.submission.Questions, 2)
	assert.Equal(t, 1, backend.submission.Questions[0].IsPassed)
	assert.Equal(t, 0, backend.submission.Questions[1].IsPassed)
	assert.Equal(t, int64(4), backend.submission.Questions[0].ExamID)
}

func TestService_SubmitQuizAllCorrect(t *testing.T) {
	sessions := &mockSessions{token: "tok-1"}
	backend := &mockPortal{quizzes: []portal.Quiz{lessonQuiz()}}
	service := NewService(sessions, backend, testLogger())

	result, err := service.SubmitQuiz(context.Background(), "device-1", 9, 4, map[int64]int64{
		100: 1,
		101: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Correct)
	assert.True(t, result.Passed)
}

func TestService_SubmitQuizUnansweredCountsAsWrong(t *testing.T) {
	sessions := &mockSessions{token: "tok-1"}
	backend := &mockPortal{quizzes: []portal.Quiz{lessonQuiz()}}
	service := NewService(sessions, backend, testLogger())

	result, err := service.SubmitQuiz(context.Background(), "device-1", 9, 4, map[int64]int64{
		100: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Correct)
	assert.False(t, result.Passed)
	assert.Equal(t, 0, backend.submission.Questions[1].IsPassed)
}

func TestService_SubmitQuizUnknownExam(t *testing.T) {
	sessions := &mockSessions{token: "tok-1"}
	backend := &mockPortal{quizzes: []portal.Quiz{lessonQuiz()}}
	service := NewService(sessions, backend, testLogger())

	_, err := service.SubmitQuiz(context.Background(), "device-1", 9, 999, nil)
	assert.ErrorIs(t, err, ErrQuizNotFound)
	assert.Nil(t, backend.submission)
}

func TestService_QuizDownloadLink(t *testing.T) {
	sessions := &mockSessions{token: "tok-1"}
	backend := &mockPortal{downloadLink: "https://portal.example.com/pdfs/quiz-4.pdf"}
	service := NewService(sessions, backend, testLogger())

	link, err := service.QuizDownloadLink(context.Background(), "device-1", 4)
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.com/pdfs/quiz-4.pdf", link)
}

func TestService_QuizDownloadRejectedTokenInvalidatesSession(t *testing.T) {
	sessions := &mockSessions{token: "stale"}
	backend := &mockPortal{downloadErr: apperrors.ErrAuthenticationRequired}
	service := NewService(sessions, backend, testLogger())

	_, err := service.QuizDownloadLink(context.Background(), "device-1", 4)
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)
	assert.Equal(t, []string{"device-1"}, sessions.invalidated)
}

func TestService_BlogsNeedNoSession(t *testing.T) {
	sessions := &mockSessions{tokenErr: apperrors.ErrAuthenticationRequired}
	backend := &mockPortal{blogs: []portal.Blog{{ID: 1, Title: "Learning at home", Slug: "learning-at-home"}}}
	service := NewService(sessions, backend, testLogger())

	blogs, err := service.Blogs(context.Background())
	require.NoError(t, err)

	require.Len(t, blogs, 1)
	assert.Equal(t, "Learning at home", blogs[0].Title)
}

func TestService_CourseContentRejectedTokenInvalidatesSession(t *testing.T) {
	sessions := &mockSessions{token: "stale"}
	backend := &mockPortal{contentErr: apperrors.ErrAuthenticationRequired}
	service := NewService(sessions, backend, testLogger())

	_, err := service.CourseContent(context.Background(), "device-1", 3, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)
	assert.Equal(t, []string{"device-1"}, sessions.invalidated)
}
