// Package user defines the current-user lookup contract the admin surface
// depends on, plus small resolvers for common setups.
package user

import "strings"

// User describes the authenticated visitor of an admin page.
type User struct {
	ID           string
	Name         string
	Capabilities []string
}

// Can reports whether the user holds the named capability. An empty
// capability requirement always passes.
func (u User) Can(capability string) bool {
	capability = strings.TrimSpace(capability)
	if capability == "" {
		return true
	}
	for _, held := range u.Capabilities {
		if strings.EqualFold(strings.TrimSpace(held), capability) {
			return true
		}
	}
	return false
}
