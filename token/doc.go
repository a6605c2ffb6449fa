// Package token inspects the opaque session tokens the oracle issues. The
// client is never the verifier — there is no key material here — but when a
// token happens to be a JWT its expiry claim is useful scheduling input for
// renew-before-expiry.
//
// # What this package must NOT do
//
//   - Verify signatures or make trust decisions (the oracle owns validity).
//   - Fail on non-JWT tokens; an unreadable token simply yields no expiry.
package token
