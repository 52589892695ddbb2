// Package utm keeps marketing attribution parameters (utm_campaign,
// utm_medium, utm_source, utm_term, utm_content) in an array cookie.
//
// A Store is created per request. On first read it merges the values already
// stored in the cookie with the UTM parameters of the current query string
// and, when the query carried any, writes the result back with the
// configured lifetime.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/utmcookie/core/utm"
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		store := utm.New(w, r,
//			utm.WithName("my_utm"),
//			utm.WithOverwrite(false),
//			utm.WithLifetime(utm.Lifetime{Months: 1}),
//		)
//
//		source, err := store.Get("source") // same as "utm_source"
//		if errors.Is(err, utm.ErrUnknownKey) {
//			// not a key of the parameter set
//		}
//
//		all := store.Params()
//		obj := store.Object()
//	}
//
// Reads never fail because of the cookie write. Call Sync to learn whether
// the write succeeded; after a failed write the store holds the empty
// canonical set.
//
// # Overwrite Policy
//
// With overwrite enabled (the default) a request carrying any UTM parameter
// replaces the whole stored set, so utm_medium=cpc alone clears a stored
// utm_source. With overwrite disabled the request only adds or replaces the
// keys it carries.
//
// # Saving Explicit Values
//
//	err := store.Save(map[string]string{"utm_campaign": "spring"})
//
// Only allowed keys (the canonical five unless WithAllowedKeys says otherwise)
// are written to the cookie; the in-memory set becomes exactly the given map.
//
// # Configuration
//
//	var cfg utm.Config
//	config.MustLoad(&cfg) // UTM_COOKIE_NAME, UTM_COOKIE_LIFETIME=P1M, UTM_OVERWRITE, ...
//	store := utm.New(w, r, cfg.Options()...)
//
// Lifetimes accept ISO 8601 durations ("P7D", "P1M", "PT12H") and Go
// durations ("168h").
//
// # Consent
//
// With UTM_REQUIRE_CONSENT set, Config.Options installs the consent cookie
// check of core/cookie: without a stored "all cookies" decision Sync keeps
// values in memory and Save fails with ErrConsentRequired.
//
// # Recording Campaign Hits
//
// A Recorder receives a Touch every time a request rewrites the cookie:
//
//	store := utm.New(w, r, utm.WithRecorder(utm.RecorderFunc(
//		func(ctx context.Context, t utm.Touch) error {
//			return db.InsertTouch(ctx, t)
//		},
//	)))
package utm
