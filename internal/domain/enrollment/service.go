// internal/domain/enrollment/service.go
package enrollment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/infrastructure/portal"
)

// ErrMissingFields is returned when required enrollment fields are absent
var ErrMissingFields = errors.New("missing required fields")

// Portal is the slice of the portal client enrollment needs
type Portal interface {
	Register(ctx context.Context, req *portal.RegisterRequest) (string, error)
	Countries(ctx context.Context) ([]portal.Country, error)
}

// Service handles new-user enrollment against the portal. A successful
// registration does not log the user in.
type Service struct {
	portal Portal
	logger *logrus.Logger
}

// NewService creates a new enrollment service
func NewService(portalClient Portal, logger *logrus.Logger) *Service {
	return &Service{
		portal: portalClient,
		logger: logger,
	}
}

// Register validates and submits an enrollment request, returning the
// portal's confirmation message
func (s *Service) Register(ctx context.Context, req *portal.RegisterRequest) (string, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Gender = strings.TrimSpace(req.Gender)

	var missing []string
	if req.FirstName == "" {
		missing = append(missing, "first name")
	}
	if req.LastName == "" {
		missing = append(missing, "last name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Gender == "" {
		missing = append(missing, "gender")
	}
	if req.CountryID == 0 {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	message, err := s.portal.Register(ctx, req)
	if err != nil {
		return "", err
	}

	s.logger.WithField("email", req.Email).Info("Enrollment submitted")
	return message, nil
}

// Countries returns the country options for the enrollment form
func (s *Service) Countries(ctx context.Context) ([]portal.Country, error) {
	return s.portal.Countries(ctx)
}
