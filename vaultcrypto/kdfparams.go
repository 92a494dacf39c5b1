package vaultcrypto

import "fmt"

// DefaultArgon2Params are the parameters used for newly created vaults.
var DefaultArgon2Params = defaultArgon2idParams

// FormatParams renders params as the opaque string stored in a container's
// plaintext header, e.g. "m=65536,t=4,p=4".
func FormatParams(params Argon2Params) string {
	return fmt.Sprintf("m=%d,t=%d,p=%d", params.Memory, params.Time, params.Parallelism)
}

// ParseParams parses the header's kdf_params string back into [Argon2Params].
// It fails with a descriptive error if the string is malformed, which callers
// surface as vaulterrors.KindKdf.
func ParseParams(s string) (Argon2Params, error) {
	var params Argon2Params

	_, err := fmt.Sscanf(s, "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &params.Parallelism)
	if err != nil {
		return Argon2Params{}, fmt.Errorf("parse kdf params %q: %w", s, err)
	}

	return params, nil
}
