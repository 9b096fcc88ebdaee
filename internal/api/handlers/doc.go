// Package handlers implements the Huma operations of the tcg-analytics API.
// Each handler exposes a Register*Routes function that binds it to a
// huma.API.
package handlers
