// Package clock abstracts the system clock behind a tiny interface so that
// time-sensitive logic (token expiry, OTP longevity) stays testable.
package clock
