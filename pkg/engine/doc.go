// Package engine implements the step form engine: a cursor over an ordered
// step schema, an accumulated data record, and the error record of the active
// step.
//
// Forward navigation (Advance) and submission (Submit) validate the active
// step; backward navigation (Retreat) never does. Edits through SetField clear
// the edited field's error without re-validating it. Submit invokes the
// completion callback with a snapshot of the whole record and tracks the
// outcome as a small state machine so renderers can surface callback failures
// as form-level errors, separate from field errors.
package engine
