package generator

import (
	"path"
	"strings"
)

func buildOutputPath(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		route = "/"
	}
	clean := strings.Trim(route, " \t\r\n/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

func joinOutputPath(base string, rel string) string {
	if strings.TrimSpace(base) == "" {
		return strings.TrimLeft(rel, "/")
	}
	return path.Join(strings.Trim(base, "/"), rel)
}
