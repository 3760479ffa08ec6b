package envutil

import (
	"os"
	"regexp"
)

// windowsVarPattern matches %VAR% style environment references.
var windowsVarPattern = regexp.MustCompile(`%([A-Za-z0-9_()]+)%`)

// ExpandWindowsEnv resolves environment variables in a path, supporting both
// Windows %VAR% and Unix $VAR / ${VAR} syntax. Unset variables expand to the
// empty string, matching os.ExpandEnv behavior.
func ExpandWindowsEnv(path string) string {
	expanded := windowsVarPattern.ReplaceAllStringFunc(path, func(match string) string {
		name := match[1 : len(match)-1]
		return os.Getenv(name)
	})
	return os.ExpandEnv(expanded)
}

// ExpandWith is ExpandWindowsEnv with an explicit lookup function, used by
// tests to resolve variables without touching the real environment.
func ExpandWith(path string, lookup func(string) string) string {
	expanded := windowsVarPattern.ReplaceAllStringFunc(path, func(match string) string {
		return lookup(match[1 : len(match)-1])
	})
	return os.Expand(expanded, lookup)
}
