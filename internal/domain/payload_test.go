package domain_test

import (
	"errors"
	"testing"

	"github.com/doeshing/synora-ui/internal/domain"
)

func TestResultGroupKind(t *testing.T) {
	tests := map[string]domain.GroupKind{
		"software": domain.GroupSoftware,
		"ai":       domain.GroupAI,
		"":         domain.GroupUnknown,
		"plugins":  domain.GroupUnknown,
		"Software": domain.GroupUnknown,
	}
	for raw, want := range tests {
		if got := (domain.ResultGroup{Type: raw}).Kind(); got != want {
			t.Errorf("Kind(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestResultItemRiskDefaultsToLow(t *testing.T) {
	if got := (domain.ResultItem{}).Risk(); got != domain.RiskLow {
		t.Fatalf("expected low, got %s", got)
	}
	if got := (domain.ResultItem{RiskLevel: "critical"}).Risk(); got != "critical" {
		t.Fatalf("raw risk should be preserved, got %s", got)
	}
}

func TestBandFor(t *testing.T) {
	if domain.BandFor(domain.RiskHigh) != domain.BandRed {
		t.Error("high should be red")
	}
	if domain.BandFor(domain.RiskMedium) != domain.BandAmber {
		t.Error("medium should be amber")
	}
	if domain.BandFor("") != domain.BandGreen || domain.BandFor("critical") != domain.BandGreen {
		t.Error("anything else should be green")
	}
}

func TestConsoleErrorMessage(t *testing.T) {
	code := 3.0
	err := &domain.ConsoleError{Kind: domain.ErrKindStructuredFailure, Message: "action failed", ExitCode: &code}
	if err.Error() != "action failed (exit 3)" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	fractional := 3.7
	err = &domain.ConsoleError{Kind: domain.ErrKindStructuredFailure, Message: "action failed", ExitCode: &fractional}
	if err.Error() != "action failed (exit 3.7)" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	unknown := &domain.ConsoleError{Kind: domain.ErrKindStructuredFailure, Message: "action failed"}
	if unknown.Error() != "action failed (exit ?)" {
		t.Fatalf("unexpected message %q", unknown.Error())
	}

	wrapped := domain.NewError(domain.ErrKindTransport, "search failed", errors.New("connection refused"))
	if !domain.IsKind(wrapped, domain.ErrKindTransport) {
		t.Fatal("expected transport kind")
	}
	if domain.IsKind(errors.New("plain"), domain.ErrKindTransport) {
		t.Fatal("plain errors have no kind")
	}
}
