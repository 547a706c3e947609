package vsphere

import (
	"fmt"
	"net/url"
	"strings"
)

// FilePath builds the path and query of the datastore file-transfer endpoint
// for the given datastore path. The returned string always starts with
// /folder/ and carries the datastore name and datacenter path as query
// parameters.
func FilePath(datastore, datacenter, path string) string {
	params := url.Values{}
	params.Set("dsName", datastore)
	if datacenter != "" {
		// vSphere decodes the dcPath parameter twice when browsing, so
		// ampersands in datacenter names must arrive double-encoded.
		params.Set("dcPath", strings.ReplaceAll(datacenter, "&", "%26"))
	}

	return "/folder/" + escapePath(path) + "?" + params.Encode()
}

// FileURL builds the absolute URL of the datastore file-transfer endpoint
// for the given host and datastore path. A bare host is dialed over HTTPS;
// a host with an explicit scheme is used as given.
func FileURL(host, datastore, datacenter, path string) string {
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return strings.TrimSuffix(host, "/") + FilePath(datastore, datacenter, path)
}

// FileSpec builds the management-API file specifier for the given datastore
// path, in the form "[datastore] path".
func FileSpec(datastore, path string) string {
	return fmt.Sprintf("[%s] %s", datastore, escapePath(path))
}

// escapePath strips leading and trailing slashes and percent-encodes every
// byte outside the RFC 3986 unreserved set, leaving segment separators
// intact.
func escapePath(path string) string {
	path = strings.Trim(path, "/")

	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '/' || isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	default:
		return false
	}
}
