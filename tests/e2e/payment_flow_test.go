//go:build e2e

package e2e

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"testing"

	resdto "clubcore/internal/handler/dto/response"
	"clubcore/internal/pkg/password"
	"clubcore/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PaymentFlowE2ETestSuite struct {
	SharedSuite
}

func TestPaymentFlowE2E(t *testing.T) {
	suite.Run(t, new(PaymentFlowE2ETestSuite))
}

func (s *PaymentFlowE2ETestSuite) seedProduct(price int64, quantity int32) uuid.UUID {
	id := uuid.New()
	_, err := s.DB.Exec(context.Background(), `
		INSERT INTO resources (id, kind, name, description, base_price, quantity_available)
		VALUES ($1, 'product', 'Club Jersey', 'Official club jersey', $2, $3)
	`, id, price, quantity)
	require.NoError(s.T(), err)
	return id
}

func (s *PaymentFlowE2ETestSuite) seedUser(email, pass, role string) uuid.UUID {
	hash, err := password.HashPassword(pass)
	require.NoError(s.T(), err)

	id := uuid.New()
	_, err = s.DB.Exec(context.Background(), `
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
	`, id, email, hash, role)
	require.NoError(s.T(), err)
	return id
}

func (s *PaymentFlowE2ETestSuite) login(email, pass string) string {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": pass}, "")
	require.Equal(s.T(), http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == "access_token" {
			return c.Value
		}
	}
	s.T().Fatal("no access token cookie in login response")
	return ""
}

func (s *PaymentFlowE2ETestSuite) checkoutAsGuest(resourceID uuid.UUID, price int64, qty int32) resdto.CheckoutResponse {
	body := map[string]any{
		"kind": "order",
		"items": []map[string]any{
			{"resource_id": resourceID, "unit_price": price, "quantity": qty},
		},
		"declared_total": price * int64(qty),
		"guest": map[string]string{
			"name":  "Guest Visitor",
			"email": "guest@example.com",
		},
	}

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkout", body, "")

	var response resdto.CheckoutResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
	return response
}

func (s *PaymentFlowE2ETestSuite) postCallback(reference, status string) *map[string]string {
	body := fmt.Appendf(nil,
		`{"data":{"transaction":{"reference":%q,"status":%q,"id":"ext-e2e"}}}`,
		reference, status)

	mac := hmac.New(sha256.New, []byte(s.Config.Gateway.WebhookSecret))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	rec := httptest.PerformRawRequest(s.T(), s.Router, http.MethodPost, "/api/payments/webhook",
		body, map[string]string{"X-Gateway-Signature": signature})

	var response map[string]string
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	return &response
}

func (s *PaymentFlowE2ETestSuite) publicStatus(id uuid.UUID) string {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
		"/api/transactions/"+id.String()+"/status", nil, "")

	var response resdto.TransactionStatusResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	return response.Status
}

func (s *PaymentFlowE2ETestSuite) resourceQuantity(id uuid.UUID) int32 {
	var qty int32
	err := s.DB.QueryRow(context.Background(),
		`SELECT quantity_available FROM resources WHERE id = $1`, id).Scan(&qty)
	require.NoError(s.T(), err)
	return qty
}

func (s *PaymentFlowE2ETestSuite) queuedJobCount() int {
	var count int
	err := s.DB.QueryRow(context.Background(),
		`SELECT count(*) FROM notification_jobs WHERE status = 'queued'`).Scan(&count)
	require.NoError(s.T(), err)
	return count
}

func (s *PaymentFlowE2ETestSuite) TestGuestPaymentFlow() {
	s.Run("approved callback confirms order and decrements stock", func() {
		resourceID := s.seedProduct(45, 20)

		checkout := s.checkoutAsGuest(resourceID, 45, 2)
		s.Equal(resdto.PublicStatusProcessing, checkout.Status)
		s.Contains(checkout.CheckoutURL, checkout.TransactionID.String())

		s.Equal(resdto.PublicStatusProcessing, s.publicStatus(checkout.TransactionID))

		resp := s.postCallback(checkout.TransactionID.String(), "APPROVED")
		s.Equal("ok", (*resp)["status"])

		s.Equal(resdto.PublicStatusConfirmed, s.publicStatus(checkout.TransactionID))
		s.Equal(int32(18), s.resourceQuantity(resourceID))
		s.Equal(1, s.queuedJobCount())
	})

	s.Run("redelivered callback does not decrement twice", func() {
		resourceID := s.seedProduct(45, 20)
		checkout := s.checkoutAsGuest(resourceID, 45, 2)

		s.postCallback(checkout.TransactionID.String(), "APPROVED")
		s.postCallback(checkout.TransactionID.String(), "APPROVED")

		s.Equal(int32(18), s.resourceQuantity(resourceID))
		s.Equal(1, s.queuedJobCount())
	})

	s.Run("declined callback fails order without touching stock", func() {
		resourceID := s.seedProduct(45, 20)
		checkout := s.checkoutAsGuest(resourceID, 45, 2)

		s.postCallback(checkout.TransactionID.String(), "DECLINED")

		s.Equal(resdto.PublicStatusFailed, s.publicStatus(checkout.TransactionID))
		s.Equal(int32(20), s.resourceQuantity(resourceID))
		s.Equal(0, s.queuedJobCount())
	})

	s.Run("decline after approval is ignored", func() {
		resourceID := s.seedProduct(45, 20)
		checkout := s.checkoutAsGuest(resourceID, 45, 2)

		s.postCallback(checkout.TransactionID.String(), "APPROVED")
		s.postCallback(checkout.TransactionID.String(), "DECLINED")

		s.Equal(resdto.PublicStatusConfirmed, s.publicStatus(checkout.TransactionID))
		s.Equal(int32(18), s.resourceQuantity(resourceID))
	})

	s.Run("callback for unknown reference is acknowledged as ignored", func() {
		resp := s.postCallback(uuid.New().String(), "APPROVED")
		s.Equal("ignored", (*resp)["status"])
	})

	s.Run("tampered callback is rejected before any processing", func() {
		resourceID := s.seedProduct(45, 20)
		checkout := s.checkoutAsGuest(resourceID, 45, 2)

		body := fmt.Appendf(nil,
			`{"data":{"transaction":{"reference":%q,"status":"APPROVED","id":"ext"}}}`,
			checkout.TransactionID.String())

		rec := httptest.PerformRawRequest(s.T(), s.Router, http.MethodPost, "/api/payments/webhook",
			body, map[string]string{"X-Gateway-Signature": "deadbeef"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid signature")

		s.Equal(resdto.PublicStatusProcessing, s.publicStatus(checkout.TransactionID))
		s.Equal(int32(20), s.resourceQuantity(resourceID))
	})

	s.Run("stale declared price is rejected at checkout", func() {
		resourceID := s.seedProduct(45, 20)

		body := map[string]any{
			"kind": "order",
			"items": []map[string]any{
				{"resource_id": resourceID, "unit_price": 40, "quantity": 2},
			},
			"declared_total": 80,
			"guest": map[string]string{
				"name":  "Guest Visitor",
				"email": "guest@example.com",
			},
		}

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkout", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Declared price does not match")
	})
}

func (s *PaymentFlowE2ETestSuite) TestForceProcess() {
	s.Run("operator override settles a pending order", func() {
		resourceID := s.seedProduct(45, 20)
		s.seedUser("operator@example.com", "operatorpass", "operator")
		checkout := s.checkoutAsGuest(resourceID, 45, 1)

		token := s.login("operator@example.com", "operatorpass")
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/transactions/"+checkout.TransactionID.String()+"/force-process", nil, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		s.Equal(resdto.PublicStatusConfirmed, s.publicStatus(checkout.TransactionID))
		s.Equal(int32(19), s.resourceQuantity(resourceID))

		var externalID string
		err := s.DB.QueryRow(context.Background(),
			`SELECT external_transaction_id FROM transactions WHERE id = $1`,
			checkout.TransactionID).Scan(&externalID)
		require.NoError(s.T(), err)
		s.Contains(externalID, "manual-")
	})

	s.Run("member role cannot force-process", func() {
		resourceID := s.seedProduct(45, 20)
		s.seedUser("member@example.com", "memberpass", "member")
		checkout := s.checkoutAsGuest(resourceID, 45, 1)

		token := s.login("member@example.com", "memberpass")
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/transactions/"+checkout.TransactionID.String()+"/force-process", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("unauthenticated force-process is rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/transactions/"+uuid.New().String()+"/force-process", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})
}

func (s *PaymentFlowE2ETestSuite) TestZeroAmountRegistration() {
	s.Run("free event registration confirms without gateway or ledger", func() {
		eventID := uuid.New()
		_, err := s.DB.Exec(context.Background(), `
			INSERT INTO resources (id, kind, name, description, base_price, quantity_available)
			VALUES ($1, 'event', 'Open Training Day', '', 0, 64)
		`, eventID)
		require.NoError(s.T(), err)

		body := map[string]any{
			"kind": "registration",
			"items": []map[string]any{
				{"resource_id": eventID, "unit_price": 0, "quantity": 1},
			},
			"declared_total": 0,
			"guest": map[string]string{
				"name":  "Guest Visitor",
				"email": "guest@example.com",
			},
		}

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkout", body, "")

		var response resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(resdto.PublicStatusConfirmed, response.Status)
		s.Contains(response.CheckoutURL, s.Config.Gateway.RedirectURL)

		s.Equal(int32(64), s.resourceQuantity(eventID))
		s.Equal(0, s.queuedJobCount())
	})
}
