// Package entity holds the persistent entities of the tenant-scoped
// healthcare facility application. Files named *_entity.go are mirrored to
// TypeScript by entmirror; see entmirror.toml at the repository root.
package entity
