// Package render defines the template-engine contract admin pages render
// through, plus theme resolution helpers shared by engine adapters.
package render
