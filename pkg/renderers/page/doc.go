// Package page renders the portfolio as a single HTML document: header,
// gallery, testimonials, the contact form and the footer. Templates and the
// default stylesheet/script are embedded; individual templates can be
// overridden from disk with WithTemplatesDir.
package page
