// Package doctor diagnoses the preference sources a resolver reads from.
//
// Each Check inspects one concern (a store file, the document, or the
// types found for catalogued keys) and reports a CheckResult with a
// Severity. A Runner executes checks in registration order and
// aggregates a DoctorReport for text or JSON rendering.
package doctor
