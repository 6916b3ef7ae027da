package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("render failed")

	if err.Error() != "render failed" {
		t.Errorf("Error() = %v, want render failed", err.Error())
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if len(err.StackTrace()) == 0 {
		t.Fatal("StackTrace() should not be empty")
	}
	if !strings.Contains(err.StackTrace()[0].Function, "TestNew") {
		t.Errorf("first frame = %v, want caller of New", err.StackTrace()[0].Function)
	}
}

func TestWithCode_DerivesSeverity(t *testing.T) {
	tests := []struct {
		code     Code
		expected Severity
	}{
		{CodeRenderFault, SeverityHigh},
		{CodeJournalError, SeverityHigh},
		{CodeReportFailed, SeverityMedium},
		{CodeInvalidInput, SeverityLow},
		{CodeUnknown, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.expected {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "nothing") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	base := errors.New("disk full")
	err := Wrap(base, "write journal").WithCode(CodeJournalError)

	if err.Error() != "write journal: disk full" {
		t.Errorf("Error() = %v", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("errors.Is should find the wrapped cause")
	}

	outer := Wrap(err, "record fault")
	if outer.Code() != CodeJournalError {
		t.Errorf("Code() = %v, want inherited %v", outer.Code(), CodeJournalError)
	}
}

func TestHasCode(t *testing.T) {
	inner := New("dial").WithCode(CodeConnectionFailed)
	outer := Wrap(inner, "report").WithCode(CodeReportFailed)
	std := fmt.Errorf("context: %w", outer)

	if !HasCode(std, CodeReportFailed) {
		t.Error("HasCode should see the outer code through fmt wrapping")
	}
	if !HasCode(std, CodeConnectionFailed) {
		t.Error("HasCode should see the inner code")
	}
	if HasCode(std, CodeRenderFault) {
		t.Error("HasCode reported a code that is not in the chain")
	}
	if HasCode(errors.New("plain"), CodeUnknown) {
		t.Error("plain errors carry no code")
	}
}

func TestGetCodeAndSeverity(t *testing.T) {
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode(plain) should be CodeUnknown")
	}
	if GetSeverity(errors.New("plain")) != SeverityMedium {
		t.Error("GetSeverity(plain) should be SeverityMedium")
	}

	err := New("x").WithCode(CodeRenderFault)
	if GetCode(err) != CodeRenderFault {
		t.Errorf("GetCode() = %v", GetCode(err))
	}
	if GetSeverity(err) != SeverityHigh {
		t.Errorf("GetSeverity() = %v", GetSeverity(err))
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("boom"), "render").
		WithCode(CodeRenderFault).
		WithOperation("view").
		WithDetail("boundary", "episodes")

	data, jsonErr := json.Marshal(err)
	if jsonErr != nil {
		t.Fatalf("Marshal() error = %v", jsonErr)
	}

	var decoded map[string]interface{}
	if jsonErr := json.Unmarshal(data, &decoded); jsonErr != nil {
		t.Fatalf("Unmarshal() error = %v", jsonErr)
	}

	if decoded["code"] != "RENDER_FAULT" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["cause"] != "boom" {
		t.Errorf("cause = %v", decoded["cause"])
	}
	if decoded["operation"] != "view" {
		t.Errorf("operation = %v", decoded["operation"])
	}
}

func TestDetailsIsCopy(t *testing.T) {
	err := New("x").WithDetail("a", 1)
	d := err.Details()
	d["a"] = 2

	if err.Details()["a"] != 1 {
		t.Error("Details() must return a copy")
	}
}

func TestCode_IsRetryable(t *testing.T) {
	if !CodeReportFailed.IsRetryable() {
		t.Error("CodeReportFailed should be retryable")
	}
	if CodeRenderFault.IsRetryable() {
		t.Error("CodeRenderFault should not be retryable")
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s        Severity
		expected string
	}{
		{SeverityLow, "low"},
		{SeverityMedium, "medium"},
		{SeverityHigh, "high"},
		{SeverityCritical, "critical"},
		{Severity(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.expected {
			t.Errorf("String() = %v, want %v", got, tt.expected)
		}
	}
	if !SeverityHigh.ShouldAlert() || SeverityMedium.ShouldAlert() {
		t.Error("ShouldAlert threshold should be SeverityHigh")
	}
}
