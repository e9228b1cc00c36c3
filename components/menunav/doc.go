// Package menunav exposes a registered admin menu as a JSON endpoint so
// dashboard shells can build their navigation client side. The handler
// supports substring search over titles and slugs for command-palette style
// lookups.
package menunav
