package common

import (
	"path"
	"strings"
)

// PkgAlias returns the short name a package is usually referred by:
//
//	example.com/shop/store -> store
//	gopkg.in/yaml.v3       -> yaml
//	github.com/foo/bar/v2  -> bar
//	com.example.model      -> model
//
// Returns empty string if pkg is empty.
func PkgAlias(pkg string) string {
	if pkg == "" {
		return ""
	}

	if !strings.Contains(pkg, "/") {
		// Dotted packages without a host ("com.example.model").
		return pkg[strings.LastIndexByte(pkg, '.')+1:]
	}

	base := path.Base(pkg)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(pkg))
	}

	if i := strings.LastIndex(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i]
	}

	return base
}

// isMajorVersion matches module major version suffixes such as "v2".
func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
