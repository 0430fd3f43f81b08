// Package modules defines the document catalogue of the planning suite: one
// storage key, document type, default value, and schema per feature module,
// plus migrations for modules whose persisted shape has changed.
//
// Keys are stable, hard-coded constants; they are never reused across
// incompatible shapes without a migration. No record embeds a version field:
// each migration recognises its own legacy shapes structurally (for example
// "a bare array" versus "an object with a roles field") and owns adding a new
// structural probe if its shape changes again.
package modules
