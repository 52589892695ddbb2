package utm

import (
	"slices"
	"strings"
)

// Canonical UTM parameter names.
const (
	KeyCampaign = "utm_campaign"
	KeyMedium   = "utm_medium"
	KeySource   = "utm_source"
	KeyTerm     = "utm_term"
	KeyContent  = "utm_content"
)

const keyPrefix = "utm_"

var canonicalKeys = []string{KeyCampaign, KeyMedium, KeySource, KeyTerm, KeyContent}

// CanonicalKeys returns the five standard UTM parameter names in their
// canonical order. It is also the default allow-list.
func CanonicalKeys() []string {
	return slices.Clone(canonicalKeys)
}

// ExpandKey turns a short name such as "source" into "utm_source".
// Only short names of canonical keys are expanded; anything else is
// returned unchanged.
func ExpandKey(key string) string {
	if strings.HasPrefix(key, keyPrefix) {
		return key
	}
	if slices.Contains(canonicalKeys, keyPrefix+key) {
		return keyPrefix + key
	}
	return key
}
