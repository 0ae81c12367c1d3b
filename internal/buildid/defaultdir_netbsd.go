//go:build netbsd

package buildid

// NetBSD ships split debug files under /usr/libdata.
const defaultDebugDir = "/usr/libdata/debug"
