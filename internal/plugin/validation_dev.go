//go:build !production

package plugin

// validationEnabled turns on descriptor validation outside production builds.
const validationEnabled = true
