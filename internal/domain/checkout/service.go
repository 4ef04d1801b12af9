// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/infrastructure/portal"
	"github.com/your-org/storefront-client/internal/pkg/apperrors"
)

// Supported payment methods
const (
	MethodStripe = "stripe"
	MethodPayPal = "paypal"
)

// ErrUnsupportedPaymentMethod is returned for payment methods the portal
// does not offer
var ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")

// Sessions is the slice of the session manager the orchestrator needs
type Sessions interface {
	IsAuthenticated(ctx context.Context, deviceID string) bool
	Token(ctx context.Context, deviceID string) (string, error)
	Profile(ctx context.Context, deviceID string) (*portal.Profile, error)
	Invalidate(ctx context.Context, deviceID string)
}

// Gateway initiates payment with the portal and returns a redirect URL
type Gateway interface {
	Checkout(ctx context.Context, token string, payload *portal.OrderPayload) (string, error)
}

// Service gates checkout and prepares the order payload. It holds no state of
// its own beyond its collaborators.
type Service struct {
	sessions    Sessions
	gateway     Gateway
	projectName string
	logger      *logrus.Logger
}

// NewService creates a new checkout service
func NewService(sessions Sessions, gateway Gateway, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		sessions:    sessions,
		gateway:     gateway,
		projectName: cfg.Portal.ProjectName,
		logger:      logger,
	}
}

// CanCheckout decides whether checkout may proceed. An empty cart is reported
// before the session is even consulted; an unauthenticated device is told to
// authenticate or register rather than proceeding.
func (s *Service) CanCheckout(ctx context.Context, deviceID string, snap *cart.Snapshot) error {
	if snap == nil || len(snap.Items) == 0 {
		return apperrors.Wrap(apperrors.ErrEmptyCart, "add items to your cart before checkout")
	}
	if !s.sessions.IsAuthenticated(ctx, deviceID) {
		return apperrors.Wrap(apperrors.ErrAuthenticationRequired, "login or register to proceed with checkout")
	}
	return nil
}

// BuildOrderPayload maps the cart and profile into the portal's order shape.
// The payload total always equals the snapshot total.
func (s *Service) BuildOrderPayload(snap *cart.Snapshot, profile *portal.Profile, method string) (*portal.OrderPayload, error) {
	if method != MethodStripe && method != MethodPayPal {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPaymentMethod, method)
	}
	if profile == nil {
		return nil, apperrors.Wrap(apperrors.ErrAuthenticationRequired, "no profile available for checkout")
	}

	lines := make([]portal.OrderLine, len(snap.Items))
	for i, item := range snap.Items {
		lines[i] = portal.OrderLine{
			GradeID:     item.GradeID,
			GradeName:   item.GradeName,
			SubjectID:   item.SubjectID,
			SubjectName: item.SubjectName,
			UnitPrice:   item.Price,
		}
	}

	total := snap.Totals.TotalAmount

	return &portal.OrderPayload{
		CountryID:     profile.CountryID,
		Name:          fmt.Sprintf("%s %s", profile.FirstName, profile.LastName),
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		Email:         profile.Email,
		Gender:        profile.Gender,
		Phone:         profile.Phone,
		PaymentMethod: method,
		PhoneNumber:   profile.Phone,
		TotalPrice:    total,
		Amount:        total,
		ProjectName:   s.projectName,
		OrderItems:    lines,
	}, nil
}

// Submit gates the checkout, builds the payload from the cart as it stands
// right now, and hands it to the portal. On success the payment-provider
// redirect URL is returned. The cart is left as-is either way: whether the
// payment actually completes is the portal's business, not ours.
func (s *Service) Submit(ctx context.Context, deviceID string, store *cart.Store, method string) (string, error) {
	snap := store.Snapshot()

	if err := s.CanCheckout(ctx, deviceID, snap); err != nil {
		return "", err
	}

	profile, err := s.sessions.Profile(ctx, deviceID)
	if err != nil {
		return "", err
	}

	payload, err := s.BuildOrderPayload(snap, profile, method)
	if err != nil {
		return "", err
	}

	token, err := s.sessions.Token(ctx, deviceID)
	if err != nil {
		return "", err
	}

	redirectURL, err := s.gateway.Checkout(ctx, token, payload)
	if err != nil {
		// A rejected token means the session is gone, not that checkout broke
		if errors.Is(err, apperrors.ErrAuthenticationRequired) {
			s.sessions.Invalidate(ctx, deviceID)
		}
		return "", err
	}

	s.logger.WithFields(logrus.Fields{
		"device_id":      deviceID,
		"payment_method": method,
		"total_amount":   payload.Amount,
		"order_items":    len(payload.OrderItems),
	}).Info("Checkout submitted")

	return redirectURL, nil
}
