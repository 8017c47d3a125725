package cmd

import "strings"

// longFlags may also be written with a single dash, e.g. -location Austin.
var longFlags = map[string]struct{}{
	"location": {},
	"word":     {},
	"proxies":  {},
	"color":    {},
	"verbose":  {},
	"version":  {},
	"help":     {},
}

// NormalizeArgs rewrites single-dash long flags to the double-dash form kong
// expects. Arguments after "--" are left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") {
			name, _, _ := strings.Cut(arg[1:], "=")
			if _, ok := longFlags[name]; ok {
				arg = "-" + arg
			}
		}
		out = append(out, arg)
	}
	return out
}
