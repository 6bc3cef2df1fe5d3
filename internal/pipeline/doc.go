// Package pipeline runs the organize steps over one working directory:
// font collection first, then subtitle renaming, sharing a single collision
// resolver, followed by a summary report.
package pipeline
