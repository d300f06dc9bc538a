// Package sanitizer normalizes user-supplied booking and catalog input before
// validation and storage.
//
// All functions are idempotent: applying them twice gives the same result.
// Invalid input is never rejected here; validation happens afterwards.
//
// Normalization includes:
//   - Names and titles: collapse whitespace, trim
//   - Emails: trim, lowercase
//   - Order ids: trim, uppercase
//   - Promo codes: trim only, lookup stays case-sensitive
//   - Image URLs: enforce https, lowercase host
package sanitizer
