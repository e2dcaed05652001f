package regdata

import "errors"

// Sentinel errors for the parsing pipeline. Model-level violations wrap the
// pkg/regmap sentinels instead.
var (
	// ErrMissingProperty means a node lacks one of its required keys.
	ErrMissingProperty = errors.New("missing required property")

	// ErrUnknownProperty means a node carries a key outside its recognized
	// set.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrLegacyFormat means the input data uses the old nested schema. This
	// is a directive to regenerate the input file, not a data-correctness
	// complaint; see ConvertLegacy.
	ErrLegacyFormat = errors.New("register data in legacy format")
)
