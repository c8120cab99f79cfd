// Package config holds the xsocket demo's settings: compiled-in defaults,
// an optional INI file, and the structured logger they select.
package config
