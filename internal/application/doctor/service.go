package doctor

import (
	"context"
	"fmt"
	"time"

	appconfig "github.com/doeshing/synora-ui/internal/application/config"
	"github.com/doeshing/synora-ui/internal/application/response"
	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

const probeKey = "doctor_probe"

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Store          ports.KeyValueStore
	Boundary       ports.SearchBoundary
	Clipboard      ports.Clipboard
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, s.storageCheck(cfg))
	checks = append(checks, s.boundaryCheck(ctx, cfg))

	if s.Clipboard != nil && s.Clipboard.Enabled() {
		checks = append(checks, ok("Clipboard", "available"))
	} else {
		checks = append(checks, warn("Clipboard", "no clipboard tool found; copy is disabled"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

// storageCheck writes, reads back and deletes a probe value.
func (s *Service) storageCheck(cfg domain.Config) domain.HealthCheck {
	if s.Store == nil {
		return fail("Storage", "store not initialized")
	}
	stamp := []byte(time.Now().UTC().Format(domain.TimestampFormat))
	if err := s.Store.Set(domain.NamespaceSession, probeKey, stamp); err != nil {
		return fail("Storage", fmt.Sprintf("write failed: %v", err))
	}
	got, found, err := s.Store.Get(domain.NamespaceSession, probeKey)
	if err != nil || !found || string(got) != string(stamp) {
		return fail("Storage", "read-back mismatch")
	}
	if err := s.Store.Delete(domain.NamespaceSession, probeKey); err != nil {
		return warn("Storage", fmt.Sprintf("probe cleanup failed: %v", err))
	}
	return ok("Storage", fmt.Sprintf("%s backend round-trip ok", cfg.GetStorageBackend()))
}

// boundaryCheck sends an empty query. A live service answers with a JSON
// error without running a search.
func (s *Service) boundaryCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	name := "Boundary " + cfg.GetBaseURL()
	if s.Boundary == nil {
		return warn(name, "boundary client not initialized")
	}
	resp, err := s.Boundary.Search(ctx, "")
	if err != nil {
		return fail(name, fmt.Sprintf("unreachable: %v", err))
	}
	if _, err := response.Classify(resp); err != nil {
		if domain.IsKind(err, domain.ErrKindWrongContentType) {
			return fail(name, fmt.Sprintf("%s returned HTML; check boundary.search_path and the port", cfg.GetSearchPath()))
		}
		return fail(name, fmt.Sprintf("%s returned non-JSON (status %d)", cfg.GetSearchPath(), resp.StatusCode))
	}
	return ok(name, fmt.Sprintf("%s answers JSON (status %d)", cfg.GetSearchPath(), resp.StatusCode))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
