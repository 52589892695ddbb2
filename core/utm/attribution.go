package utm

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Attribution is the structured form of a parameter set.
// Nil fields are keys without a value.
type Attribution struct {
	Campaign *string           `json:"utm_campaign,omitempty"`
	Medium   *string           `json:"utm_medium,omitempty"`
	Source   *string           `json:"utm_source,omitempty"`
	Term     *string           `json:"utm_term,omitempty"`
	Content  *string           `json:"utm_content,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// NewAttribution converts a parameter set.
func NewAttribution(p Params) Attribution {
	field := func(key string) *string {
		if v, ok := p.Lookup(key); ok {
			return &v
		}
		return nil
	}

	a := Attribution{
		Campaign: field(KeyCampaign),
		Medium:   field(KeyMedium),
		Source:   field(KeySource),
		Term:     field(KeyTerm),
		Content:  field(KeyContent),
	}

	for _, k := range p.keys {
		if isCanonical(k) {
			continue
		}
		if v, ok := p.Lookup(k); ok {
			if a.Extra == nil {
				a.Extra = make(map[string]string)
			}
			a.Extra[k] = v
		}
	}

	return a
}

// Touch is a single campaign hit: a request that carried UTM parameters
// and caused the cookie to be rewritten.
type Touch struct {
	ID        uuid.UUID         `json:"id"`
	Cookie    string            `json:"cookie"`
	Params    map[string]string `json:"params"`
	URL       string            `json:"url"`
	Referrer  string            `json:"referrer,omitempty"`
	ClientIP  string            `json:"client_ip,omitempty"`
	UserAgent string            `json:"user_agent,omitempty"`
	Visitor   string            `json:"visitor,omitempty"`
	At        time.Time         `json:"at"`
}

// Recorder receives campaign hits, e.g. to keep an attribution log.
// Failures are logged by the Store and never reach the request.
type Recorder interface {
	Record(ctx context.Context, t Touch) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, t Touch) error

// Record calls f.
func (f RecorderFunc) Record(ctx context.Context, t Touch) error {
	return f(ctx, t)
}

func isCanonical(key string) bool {
	return slices.Contains(canonicalKeys, key)
}
