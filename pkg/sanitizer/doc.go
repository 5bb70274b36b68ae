// Package sanitizer provides input normalization for booking data.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. Functions handle invalid input gracefully, typically by returning
// empty strings or clamped values rather than errors.
//
// Normalization includes:
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Guest names: Whitespace normalization preserving case and diacritics
//   - Reason labels: Lowercase with punctuation collapsed to underscores
//   - Numbers: Clamp discounts and charges to valid ranges
package sanitizer
