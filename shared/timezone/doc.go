// Package timezone centralizes clock access so that every timestamp the
// service writes or formats is produced in the configured application
// timezone rather than the host default.
package timezone
