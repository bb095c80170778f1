// Package file provides a file-based configuration store.
// Settings live in a TOML file under the WikiTalk config directory.
package file
