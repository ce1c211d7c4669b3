package network

import (
	"strings"

	"github.com/polka-dots/polka/pkg/parse"
)

// ParseConnections reads the connections list, one name per line
func ParseConnections(data string) []string {
	return parse.Lines(data)
}

// ActiveInterfaces extracts the interface names from `wg show`
func ActiveInterfaces(out string) []string {
	var ifaces []string
	for _, line := range parse.Lines(out) {
		if name, ok := strings.CutPrefix(line, "interface:"); ok {
			ifaces = append(ifaces, strings.TrimSpace(name))
		}
	}
	return ifaces
}
