package service

import "strings"

// NormalizarNombre trims, collapses internal whitespace and uppercases, so
// "  Coca   Cola " and "coca cola" resolve to the same catalog entry.
func NormalizarNombre(nombre string) string {
	return strings.ToUpper(strings.Join(strings.Fields(nombre), " "))
}
