package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/captable/captable-api/internal/core/domain"
)

type stubRenderer struct {
	lastShareholder *domain.Shareholder
	lastIssuance    *domain.ShareIssuance
	err             error
}

func (r *stubRenderer) Render(sh *domain.Shareholder, iss *domain.ShareIssuance) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.lastShareholder = sh
	r.lastIssuance = iss
	return []byte("%PDF-stub"), nil
}

type certificateFixture struct {
	shareholders *stubShareholderRepo
	issuances    *stubIssuanceRepo
	renderer     *stubRenderer
	svc          *CertificateService
	alice        *domain.Shareholder
	bob          *domain.Shareholder
	issuanceID   int64
}

func newCertificateFixture(t *testing.T) *certificateFixture {
	t.Helper()
	users := newStubUserRepo()
	shareholders := newStubShareholderRepo(users)
	issuances := newStubIssuanceRepo()
	renderer := &stubRenderer{}

	alice := shareholders.add(&domain.Shareholder{UserID: 7, Name: "Alice", Email: "alice@example.com"})
	bob := shareholders.add(&domain.Shareholder{UserID: 8, Name: "Bob", Email: "bob@example.com"})
	iss, err := issuances.Create(context.Background(), &domain.ShareIssuance{
		ShareholderID:  alice.ID,
		NumberOfShares: 100,
		Price:          decimal.NewFromInt(5),
		Date:           time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed issuance: %v", err)
	}

	return &certificateFixture{
		shareholders: shareholders,
		issuances:    issuances,
		renderer:     renderer,
		svc:          NewCertificateService(issuances, shareholders, renderer, discardLogger),
		alice:        alice,
		bob:          bob,
		issuanceID:   iss.ID,
	}
}

func TestCertificateServiceGenerateForOwner(t *testing.T) {
	f := newCertificateFixture(t)

	doc, err := f.svc.Generate(context.Background(), f.issuanceID, shareholderUser(7, "alice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(doc, []byte("%PDF-stub")) {
		t.Errorf("got %q, want the rendered document", doc)
	}
	if f.renderer.lastShareholder == nil || f.renderer.lastShareholder.ID != f.alice.ID {
		t.Errorf("renderer got shareholder %+v, want Alice", f.renderer.lastShareholder)
	}
	if f.renderer.lastIssuance == nil || f.renderer.lastIssuance.ID != f.issuanceID {
		t.Errorf("renderer got issuance %+v, want id %d", f.renderer.lastIssuance, f.issuanceID)
	}
}

func TestCertificateServiceGenerateForAdmin(t *testing.T) {
	f := newCertificateFixture(t)

	if _, err := f.svc.Generate(context.Background(), f.issuanceID, adminUser()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCertificateServiceGenerateForbidden(t *testing.T) {
	f := newCertificateFixture(t)

	tests := []struct {
		name  string
		actor *domain.User
	}{
		{"other shareholder", shareholderUser(8, "bob")},
		{"shareholder without profile", shareholderUser(99, "orphan")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Generate(context.Background(), f.issuanceID, tc.actor)
			if !errors.Is(err, domain.ErrForbidden) {
				t.Errorf("got %v, want ErrForbidden", err)
			}
		})
	}
	if f.renderer.lastIssuance != nil {
		t.Error("renderer must not run for rejected requests")
	}
}

func TestCertificateServiceGenerateUnknownIssuance(t *testing.T) {
	f := newCertificateFixture(t)

	_, err := f.svc.Generate(context.Background(), 999, adminUser())
	if !errors.Is(err, domain.ErrIssuanceNotFound) {
		t.Fatalf("got %v, want ErrIssuanceNotFound", err)
	}
}

func TestCertificateServiceGenerateRendererFailure(t *testing.T) {
	f := newCertificateFixture(t)
	f.renderer.err = errors.New("render failed")

	_, err := f.svc.Generate(context.Background(), f.issuanceID, adminUser())
	if err == nil || !errors.Is(err, f.renderer.err) {
		t.Fatalf("got %v, want the renderer error", err)
	}
}
