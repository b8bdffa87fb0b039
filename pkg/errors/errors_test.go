package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidItem, "item name cannot be empty"),
			want: "INVALID_ITEM: item name cannot be empty",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeGenerationFailed, stderrors.New("boom"), "rasterize png"),
			want: "GENERATION_FAILED: rasterize png: boom",
		},
		{
			name: "with formatting",
			err:  New(ErrCodeInvalidPrice, "price must be finite, got %v", "NaN"),
			want: "INVALID_PRICE: price must be finite, got NaN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidSection, "section name cannot be empty")
	if !Is(err, ErrCodeInvalidSection) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeInvalidItem) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidSection) {
		t.Error("Is() should not match a plain error")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeInvalidPrice, "negative price")
	outer := fmt.Errorf("normalize: %w", inner)
	if !Is(outer, ErrCodeInvalidPrice) {
		t.Error("Is() should unwrap fmt-wrapped errors")
	}
	if GetCode(outer) != ErrCodeInvalidPrice {
		t.Errorf("GetCode() = %q, want %q", GetCode(outer), ErrCodeInvalidPrice)
	}
}

func TestNewField(t *testing.T) {
	err := NewField(ErrCodeInvalidItem, "sections[1].items[3].name", "item name exceeds %d characters", 200)
	if got := GetField(err); got != "sections[1].items[3].name" {
		t.Errorf("GetField() = %q", got)
	}
	if GetField(stderrors.New("plain")) != "" {
		t.Error("GetField() on plain error should be empty")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidMenu, "menu must contain at least one section")
	if got := UserMessage(err); got != "menu must contain at least one section" {
		t.Errorf("UserMessage() = %q", got)
	}
	plain := stderrors.New("something broke")
	if got := UserMessage(plain); got != "something broke" {
		t.Errorf("UserMessage() on plain error = %q", got)
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeInvalidMenu, true},
		{ErrCodeInvalidSection, true},
		{ErrCodeInvalidItem, true},
		{ErrCodeInvalidPrice, true},
		{ErrCodeInvalidContext, true},
		{ErrCodeInvalidFormat, true},
		{ErrCodeTemplateIncompatible, false},
		{ErrCodeGenerationFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := IsValidation(New(tt.code, "x")); got != tt.want {
				t.Errorf("IsValidation(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestIsCompatibility(t *testing.T) {
	if !IsCompatibility(New(ErrCodeTemplateIncompatible, "no image support")) {
		t.Error("IsCompatibility() should match TEMPLATE_INCOMPATIBLE")
	}
	if IsCompatibility(New(ErrCodeInvalidMenu, "x")) {
		t.Error("IsCompatibility() should not match validation errors")
	}
}
