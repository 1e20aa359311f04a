package handler

import "github.com/Scetch/potw/internal/utils"

// generateState returns the random token correlating an authorization
// request with its callback. 32 bytes = 256 bits of entropy.
func generateState() string {
	return utils.RandomString(32)
}
