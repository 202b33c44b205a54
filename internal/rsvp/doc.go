// Package rsvp holds the guest response model: which questions a guest is
// shown, the in-memory selections behind the RSVP form, and how those
// selections become the records written on submit.
package rsvp
