// Package testutil holds fixtures shared by package tests.
package testutil

import "fmt"

// Entrants returns n labels "T1".."Tn", the conventional test field.
func Entrants(n int) []string {
	return EntrantsWithPrefix("T", n)
}

// EntrantsWithPrefix returns n labels prefix+"1".."n".
func EntrantsWithPrefix(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return names
}

// FixedIDs returns n predictable draw IDs "draw-0001".."draw-n".
func FixedIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("draw-%04d", i+1)
	}
	return ids
}
