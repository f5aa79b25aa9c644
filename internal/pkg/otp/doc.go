// Package otp provides helpers for generating and validating one-time
// passwords (OTP) delivered out of band, typically by email.
//
// Codes are short random numbers with a bounded lifetime. Only the hash of a
// code should ever be stored; the plaintext exists just long enough to be
// delivered to the user.
package otp
