//go:build !netbsd

package buildid

const defaultDebugDir = "/usr/lib/debug"
