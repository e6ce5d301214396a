// Package linkshelf exposes build-level metadata for the linkshelf project.
package linkshelf

// Version is the linkshelf release version.
const Version = "0.1.0"
