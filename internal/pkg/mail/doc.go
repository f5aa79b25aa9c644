// Package mail sends email through a provider-agnostic Mail interface.
//
// Callers build a Message and hand it to whatever implementation the app
// wired in; only this package knows about SMTP or any other transport.
package mail
