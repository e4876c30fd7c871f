package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
)

type samplePayload struct {
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com","quantity":3}`))
	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Email != "a@b.com" || payload.Quantity != 3 {
		t.Fatalf("payload not decoded: %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com","extra":true}`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code got %s", pkgerrors.As(err).Code())
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{`))
	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestDecodeJSONBodyReportsFieldsByJSONName(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":0}`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map got %T", typed.Details())
	}
	if _, present := details["email"]; !present {
		t.Fatalf("expected email detail keyed by json tag, got %v", details)
	}
}

func TestSanitizeStringTrimsAndCaps(t *testing.T) {
	got := SanitizeString("  hello world  ", 5)
	if got != "hello" {
		t.Fatalf("expected trimmed capped string got %q", got)
	}
}
