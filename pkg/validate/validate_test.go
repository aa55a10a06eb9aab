package validate

import (
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/sallaty-client/pkg/errors"
)

type loginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(loginForm{Username: "متجر الريف", Password: "secret"}); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(loginForm{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if !strings.Contains(typed.Message(), "username") {
		t.Fatalf("expected json field name in message, got %q", typed.Message())
	}
}
