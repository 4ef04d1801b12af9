// internal/infrastructure/portal/client.go
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/pkg/apperrors"
)

// Client talks to the remote learning-portal REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new portal API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.Portal.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Portal.Timeout,
		},
		logger: logger,
	}
}

// Login authenticates against POST /login. The portal signals success with a
// human-readable message containing "success" next to a bearer token; anything
// else on a 2xx is a credential rejection.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	status, respBody, err := c.call(ctx, http.MethodPost, "/login", "", body)
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, "malformed login response: %v", jsonErr)
	}

	if status >= 500 {
		return nil, apperrors.Wrap(apperrors.ErrServer, "login failed with status %d", status)
	}
	if status >= 400 {
		reason := resp.Message
		if reason == "" {
			reason = "please check your credentials and try again"
		}
		return nil, apperrors.Wrap(apperrors.ErrAuthenticationFailed, "%s", reason)
	}

	// Success indicator is a substring match on the message, per the portal contract
	if !strings.Contains(strings.ToLower(resp.Message), "success") {
		reason := resp.Message
		if reason == "" {
			reason = "invalid credentials"
		}
		return nil, apperrors.Wrap(apperrors.ErrAuthenticationFailed, "%s", reason)
	}

	if resp.Token == "" {
		return nil, apperrors.Wrap(apperrors.ErrServer, "login succeeded but no token was returned")
	}

	return &LoginResult{
		Token:   resp.Token,
		Profile: resp.profile(),
	}, nil
}

// profile extracts the user attributes from whichever shape the portal used
func (r *loginResponse) profile() *Profile {
	if r.User != nil {
		return r.User
	}
	if r.Email == "" && r.FirstName == "" {
		return nil
	}
	return &Profile{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Gender:    r.Gender,
		CountryID: r.CountryID,
	}
}

// Register submits an enrollment request to POST /register
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (string, error) {
	status, respBody, err := c.call(ctx, http.MethodPost, "/register", "", req)
	if err != nil {
		return "", err
	}

	var resp statusResponse
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil {
		return "", apperrors.Wrap(apperrors.ErrServer, "malformed register response: %v", jsonErr)
	}

	if status >= 400 || !resp.ok() {
		reason := resp.Message
		if reason == "" {
			reason = fmt.Sprintf("registration failed with status %d", status)
		}
		return "", apperrors.Wrap(apperrors.ErrServer, "%s", reason)
	}

	return resp.Message, nil
}

// Courses fetches the bearer-authenticated course catalog from GET /courses.
// Entries missing a course, grade, or subject name are dropped at the boundary.
func (c *Client) Courses(ctx context.Context, token string) ([]Course, error) {
	status, respBody, err := c.call(ctx, http.MethodGet, "/courses", token, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, apperrors.Wrap(apperrors.ErrAuthenticationRequired, "portal rejected the session token")
	}
	if status >= 400 {
		return nil, apperrors.Wrap(apperrors.ErrServer, "course catalog request failed with status %d", status)
	}

	var resp struct {
		Data []Course `json:"data"`
	}
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, "malformed course catalog: %v", jsonErr)
	}

	valid := make([]Course, 0, len(resp.Data))
	for _, course := range resp.Data {
		if course.FullCourseName == "" || course.GradeName == "" || course.SubjectName == "" {
			continue
		}
		valid = append(valid, course)
	}
	return valid, nil
}

// CourseContent fetches the lessons of one course from GET /courses/{id}
func (c *Client) CourseContent(ctx context.Context, token string, courseID, gradeID, subjectID int64) (*CourseContent, error) {
	path := fmt.Sprintf("/courses/%d?%s", courseID, url.Values{
		"grade_id":   {fmt.Sprintf("%d", gradeID)},
		"subject_id": {fmt.Sprintf("%d", subjectID)},
	}.Encode())

	status, respBody, err := c.call(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, apperrors.Wrap(apperrors.ErrAuthenticationRequired, "portal rejected the session token")
	}
	if status >= 400 {
		return nil, apperrors.Wrap(apperrors.ErrServer, "course content request failed with status %d", status)
	}

	var resp struct {
		Data *CourseContent `json:"data"`
	}
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, "malformed course content: %v", jsonErr)
	}
	if resp.Data == nil || resp.Data.Lessons == nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, "course content missing lessons")
	}

	return resp.Data, nil
}

// Quizzes fetches the exams attached to a lesson from GET /course/quiz
func (c *Client) Quizzes(ctx context.Context, token string, lessonID int64) ([]Quiz, error) {
	path := fmt.Sprintf("/course/quiz?lesson_id=%d", lessonID)

	status, respBody, err := c.call(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, apperrors.Wrap(apperrors.ErrAuthenticationRequired, "portal rejected the session token")
	}
	if status >= 400 {
		return nil, apperrors.Wrap(apperrors.ErrServer, "quiz request failed with status %d", status)
	}

	var resp quizEnvelope
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, "malformed quiz response: %v", jsonErr)
	}
	if !strings.EqualFold(resp.Success, "Success") {
		reason := resp.Message
		if reason == "" {
			reason = "could not load quiz questions"
		}
		return nil, apperrors.Wrap(apperrors.ErrServer, "%s", reason)
	}

	var quizzes []Quiz
	if jsonErr := json.Unmarshal(resp.Data, &quizzes); jsonErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, "malformed quiz list: %v", jsonErr)
	}
	return quizzes, nil
}

// SubmitQuiz posts graded answers to POST /course/quiz/submit
func (c *Client) SubmitQuiz(ctx context.Context, token string, submission *QuizSubmission) error {
	status, respBody, err := c.call(ctx, http.MethodPost, "/course/quiz/submit", token, submission)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return apperrors.Wrap(apperrors.ErrAuthenticationRequired, "portal rejected the session token")
	}
	if status >= 400 {
		return apperrors.Wrap(apperrors.ErrServer, "quiz submit failed with status %d", status)
	}

	var resp quizEnvelope
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil {
		return apperrors.Wrap(apperrors.ErrServer, "malformed quiz submit response: %v", jsonErr)
	}
	if !strings.EqualFold(resp.Success, "Success") {
		reason := resp.Message
		if reason == "" {
			reason = "failed to submit quiz"
		}
		return apperrors.Wrap(apperrors.ErrServer, "%s", reason)
	}
	return nil
}

// QuizDownloadLink fetches the printable-quiz URL from GET /course/download-quiz/{id}
func (c *Client) QuizDownloadLink(ctx context.Context, token string, examID int64) (string, error) {
	path := fmt.Sprintf("/course/download-quiz/%d", examID)

	status, respBody, err := c.call(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return "", err
	}
	if status == http.StatusUnauthorized {
		return "", apperrors.Wrap(apperrors.ErrAuthenticationRequired, "portal rejected the session token")
	}
	if status >= 400 {
		return "", apperrors.Wrap(apperrors.ErrServer, "quiz download request failed with status %d", status)
	}

	var resp struct {
		DownloadLink string `json:"download_link"`
	}
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil {
		return "", apperrors.Wrap(apperrors.ErrServer, "malformed quiz download response: %v", jsonErr)
	}
	if resp.DownloadLink == "" {
		return "", apperrors.Wrap(apperrors.ErrServer, "quiz download link missing")
	}
	return resp.DownloadLink, nil
}

// Blogs fetches the public blog listing from GET /blogs. The listing is
// paginated server-side; the first page arrives nested one level down.
func (c *Client) Blogs(ctx context.Context) ([]Blog, error) {
	status, respBody, err := c.call(ctx, http.MethodGet, "/blogs", "", nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, apperrors.Wrap(apperrors.ErrServer, "blog listing request failed with status %d", status)
	}

	var resp struct {
		Data struct {
			Data []Blog `json:"data"`
		} `json:"data"`
	}
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, "malformed blog listing: %v", jsonErr)
	}
	return resp.Data.Data, nil
}

// Countries fetches the enrollment country options from GET /country
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	status, respBody, err := c.call(ctx, http.MethodGet, "/country", "", nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, apperrors.Wrap(apperrors.ErrServer, "country list request failed with status %d", status)
	}

	var resp struct {
		Data []Country `json:"data"`
	}
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, "malformed country list: %v", jsonErr)
	}
	return resp.Data, nil
}

// Checkout submits the order payload to POST /checkout and returns the
// payment-provider redirect URL
func (c *Client) Checkout(ctx context.Context, token string, payload *OrderPayload) (string, error) {
	status, respBody, err := c.call(ctx, http.MethodPost, "/checkout", token, payload)
	if err != nil {
		return "", err
	}
	if status == http.StatusUnauthorized {
		return "", apperrors.Wrap(apperrors.ErrAuthenticationRequired, "portal rejected the session token")
	}
	if status >= 400 {
		return "", apperrors.Wrap(apperrors.ErrServer, "checkout failed with status %d", status)
	}

	var resp struct {
		Status string `json:"status"`
		Data   string `json:"data"`
	}
	if jsonErr := json.Unmarshal(respBody, &resp); jsonErr != nil {
		return "", apperrors.Wrap(apperrors.ErrServer, "malformed checkout response: %v", jsonErr)
	}
	if resp.Status != "success" || resp.Data == "" {
		return "", apperrors.Wrap(apperrors.ErrServer, "checkout did not return a redirect URL")
	}

	return resp.Data, nil
}

// call makes HTTP calls to the portal API
func (c *Client) call(ctx context.Context, method, path, token string, data interface{}) (int, []byte, error) {
	var reqBody []byte
	var err error

	if data != nil {
		reqBody, err = json.Marshal(data)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, apperrors.Wrap(apperrors.ErrNetwork, "portal request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, apperrors.Wrap(apperrors.ErrNetwork, "failed to read portal response: %v", err)
	}

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("Portal API call completed")

	return resp.StatusCode, respBody, nil
}

// ok reports whether the generic status envelope indicates success. The portal
// answers with the number 200 in some endpoints and the string "success" in others.
func (r *statusResponse) ok() bool {
	raw := strings.Trim(string(r.Status), `"`)
	return raw == "200" || strings.EqualFold(raw, "success")
}
