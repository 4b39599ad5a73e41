// Package openapi builds step forms from the JSON request body of an OpenAPI
// operation. Properties are grouped into steps with the x-step extension and
// ordered with x-order; properties without x-step land in a trailing
// "details" step.
package openapi
