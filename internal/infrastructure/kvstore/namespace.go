package kvstore

import (
	"fmt"
	"regexp"
)

var namespacePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// validateNamespace keeps namespaces safe to use as file names.
func validateNamespace(ns string) error {
	if !namespacePattern.MatchString(ns) {
		return fmt.Errorf("invalid namespace %q", ns)
	}
	return nil
}
