// Package contact owns the contact form: its field state, the required-field
// precondition, and the submission lifecycle that hands accepted messages to a
// Deliverer and resets the form.
//
// A Controller is not safe for concurrent use. Each visitor session owns its
// own Controller; the HTTP server rebuilds one per request from the session.
package contact
