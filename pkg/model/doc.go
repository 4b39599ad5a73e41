// Package model defines the step/field schema consumed by the step form engine
// and its renderers. A form is an ordered slice of Step values; each Step owns
// an ordered slice of Field definitions whose Name doubles as the key in the
// accumulated Record. Values are tagged (absent, string or number) so renderers
// and validators never have to guess what a key holds. Field types form a
// closed set; unknown tags are preserved on the definition and renderers fall
// back to plain single-line text for them. CheckSteps guards construction
// against duplicate IDs, duplicate field names and duplicate select option
// values.
package model
