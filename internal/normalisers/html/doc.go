// Package html provides a Normaliser implementation for HTML documents.
// It parses the markup with golang.org/x/net/html and keeps the readable
// text, dropping scripts and styles.
package html
