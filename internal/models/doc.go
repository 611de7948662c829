// Package models defines the persisted record shapes. Every record embeds
// BaseRecord and is stored as a flat JSON object inside its collection
// document; field names follow the on-disk camelCase format.
package models
