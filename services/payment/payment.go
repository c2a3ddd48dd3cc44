package payment

import (
	"context"
	"time"

	"github.com/adityarama/iuranpay/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_payment.go -package=mocks github.com/adityarama/iuranpay/services/payment PaymentGW,Navigator,Notices

// PaymentGW is the REST gateway to the dues-portal backend
type PaymentGW interface {
	CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentCharge, error)
	RetryPayment(ctx context.Context, paymentID string) (*models.PaymentCharge, error)
	ForceCheck(ctx context.Context, paymentID string) (*models.ForceCheckResult, error)
	ListPayments(ctx context.Context, userID string) ([]models.Payment, error)
}

// Navigator abstracts the view the engine drives. OpenExternal opens a URL
// in a new browsing context; NavigateTo moves the current view.
type Navigator interface {
	OpenExternal(url string) error
	NavigateTo(path string)
}

// Notices is the user-facing message surface
type Notices interface {
	Info(message string)
	Success(message string)
	Toast(message string, duration time.Duration)
	GlobalError(message string)
}

// ErrorClass partitions user-action failures by how they are surfaced
type ErrorClass int

const (
	// ErrorClassToast is a transient, self-dismissing notice
	ErrorClassToast ErrorClass = iota
	// ErrorClassGlobal escalates to the application-wide error surface
	ErrorClassGlobal
)

// ErrorClassifier decides how a backend rejection is surfaced. It is an
// external collaborator; the engine only invokes it at catch sites.
type ErrorClassifier func(err error) (ErrorClass, string, time.Duration)

// DefaultErrorClassifier surfaces every failure as a 5 second toast
func DefaultErrorClassifier(err error) (ErrorClass, string, time.Duration) {
	return ErrorClassToast, err.Error(), 5 * time.Second
}
