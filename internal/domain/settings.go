package domain

// Languages supported by the locale tables.
const (
	LangZH = "zh"
	LangEN = "en"
)

// NormalizeLanguage maps anything other than "en" to "zh".
func NormalizeLanguage(lang string) string {
	if lang == LangEN {
		return LangEN
	}
	return LangZH
}

// Known settings flags. They are display state only.
const (
	FlagAllowApplyUpdates = "allow_apply_updates"
	FlagAutoUpdateCheck   = "auto_update_check"
	FlagAIAssist          = "ai_assist"
)

// KnownFlags lists the settings flags in display order.
var KnownFlags = []string{FlagAllowApplyUpdates, FlagAutoUpdateCheck, FlagAIAssist}

// Settings holds user policy toggles.
type Settings struct {
	Flags map[string]bool `json:"flags"`
}

// DefaultSettings returns every known flag switched off.
func DefaultSettings() Settings {
	flags := make(map[string]bool, len(KnownFlags))
	for _, f := range KnownFlags {
		flags[f] = false
	}
	return Settings{Flags: flags}
}

// IsKnownFlag reports whether name is a recognized flag.
func IsKnownFlag(name string) bool {
	for _, f := range KnownFlags {
		if f == name {
			return true
		}
	}
	return false
}
