// Package contact implements contact-form intake: field validation, bot
// verification, and acknowledgment.
//
// Submissions are not persisted. A verified submission is emitted as a
// structured log record (with the email redacted) and acknowledged with a
// fresh opaque reference; the log stream is the system of record.
package contact
