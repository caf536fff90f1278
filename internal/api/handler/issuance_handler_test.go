package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/captable/captable-api/internal/core/domain"
	"github.com/captable/captable-api/internal/core/ports"
)

type stubIssuanceService struct {
	listFn   func(ctx context.Context, actor *domain.User) ([]ports.IssuanceView, error)
	createFn func(ctx context.Context, in ports.CreateIssuanceInput, actor *domain.User) (*domain.ShareIssuance, error)
}

func (s *stubIssuanceService) List(ctx context.Context, actor *domain.User) ([]ports.IssuanceView, error) {
	return s.listFn(ctx, actor)
}

func (s *stubIssuanceService) Create(ctx context.Context, in ports.CreateIssuanceInput, actor *domain.User) (*domain.ShareIssuance, error) {
	return s.createFn(ctx, in, actor)
}

type stubCertificateService struct {
	generateFn func(ctx context.Context, issuanceID int64, actor *domain.User) ([]byte, error)
}

func (s *stubCertificateService) Generate(ctx context.Context, issuanceID int64, actor *domain.User) ([]byte, error) {
	return s.generateFn(ctx, issuanceID, actor)
}

func TestIssuanceHandler_List(t *testing.T) {
	e := newTestEcho()
	shID := int64(3)
	stub := &stubIssuanceService{
		listFn: func(ctx context.Context, actor *domain.User) ([]ports.IssuanceView, error) {
			if actor.Username != "alice" {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			return []ports.IssuanceView{{
				IssuanceID:       1,
				Date:             "2026-03-15T09:30:00Z",
				Price:            decimal.NewFromFloat(12.75),
				NumberOfShares:   500,
				ShareholderID:    &shID,
				ShareholderName:  "Alice",
				ShareholderEmail: "alice@example.com",
			}}, nil
		},
	}
	handler := NewIssuanceHandler(stub, &stubCertificateService{})

	req := httptest.NewRequest(http.MethodGet, "/api/issuances", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &domain.User{ID: 7, Username: "alice", Role: domain.RoleShareholder})

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 issuance, got %d", len(resp))
	}
	if resp[0]["shareholder_name"] != "Alice" || resp[0]["date"] != "2026-03-15T09:30:00Z" {
		t.Fatalf("unexpected payload: %+v", resp[0])
	}
}

func TestIssuanceHandler_List_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	handler := NewIssuanceHandler(&stubIssuanceService{}, &stubCertificateService{})

	req := httptest.NewRequest(http.MethodGet, "/api/issuances", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.List(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestIssuanceHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubIssuanceService{
		createFn: func(ctx context.Context, in ports.CreateIssuanceInput, actor *domain.User) (*domain.ShareIssuance, error) {
			if in.ShareholderID != 3 || in.NumberOfShares != 500 {
				t.Fatalf("unexpected input: %+v", in)
			}
			if !in.Price.Equal(decimal.NewFromFloat(12.75)) {
				t.Fatalf("unexpected price: %s", in.Price)
			}
			return &domain.ShareIssuance{ID: 1, ShareholderID: in.ShareholderID, NumberOfShares: in.NumberOfShares, Price: in.Price}, nil
		},
	}
	handler := NewIssuanceHandler(stub, &stubCertificateService{})

	body := strings.NewReader(`{"shareholder_id":3,"number_of_shares":500,"price":12.75}`)
	req := httptest.NewRequest(http.MethodPost, "/api/issuances", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin})

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestIssuanceHandler_Create_MissingShareholderID(t *testing.T) {
	e := newTestEcho()
	stub := &stubIssuanceService{
		createFn: func(ctx context.Context, in ports.CreateIssuanceInput, actor *domain.User) (*domain.ShareIssuance, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewIssuanceHandler(stub, &stubCertificateService{})

	body := strings.NewReader(`{"number_of_shares":500,"price":12.75}`)
	req := httptest.NewRequest(http.MethodPost, "/api/issuances", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin})

	err := handler.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestIssuanceHandler_Create_ServiceError(t *testing.T) {
	e := newTestEcho()
	stub := &stubIssuanceService{
		createFn: func(ctx context.Context, in ports.CreateIssuanceInput, actor *domain.User) (*domain.ShareIssuance, error) {
			return nil, domain.ErrInvalidShareCount
		},
	}
	handler := NewIssuanceHandler(stub, &stubCertificateService{})

	body := strings.NewReader(`{"shareholder_id":3,"number_of_shares":0,"price":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/issuances", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin})

	err := handler.Create(c)
	if !errors.Is(err, domain.ErrInvalidShareCount) {
		t.Fatalf("expected ErrInvalidShareCount, got %v", err)
	}
}

func TestIssuanceHandler_Certificate(t *testing.T) {
	e := newTestEcho()
	stub := &stubCertificateService{
		generateFn: func(ctx context.Context, issuanceID int64, actor *domain.User) ([]byte, error) {
			if issuanceID != 42 {
				t.Fatalf("unexpected issuance id: %d", issuanceID)
			}
			return []byte("%PDF-stub"), nil
		},
	}
	handler := NewIssuanceHandler(&stubIssuanceService{}, stub)

	req := httptest.NewRequest(http.MethodGet, "/api/issuances/42/certificate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")
	c.Set("user", &domain.User{ID: 7, Username: "alice", Role: domain.RoleShareholder})

	if err := handler.Certificate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if rec.Body.String() != "%PDF-stub" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestIssuanceHandler_Certificate_BadID(t *testing.T) {
	e := newTestEcho()
	handler := NewIssuanceHandler(&stubIssuanceService{}, &stubCertificateService{})

	req := httptest.NewRequest(http.MethodGet, "/api/issuances/abc/certificate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set("user", &domain.User{ID: 7, Username: "alice", Role: domain.RoleShareholder})

	err := handler.Certificate(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestIssuanceHandler_Certificate_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubCertificateService{
		generateFn: func(ctx context.Context, issuanceID int64, actor *domain.User) ([]byte, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewIssuanceHandler(&stubIssuanceService{}, stub)

	req := httptest.NewRequest(http.MethodGet, "/api/issuances/1/certificate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user", &domain.User{ID: 8, Username: "bob", Role: domain.RoleShareholder})

	err := handler.Certificate(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
