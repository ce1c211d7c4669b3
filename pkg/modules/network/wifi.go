package network

import (
	"strings"

	"github.com/polka-dots/polka/pkg/parse"
)

// Network is one visible access point
type Network struct {
	Name     string
	Security string
	// Strength counts the lit bars, 0 to 4
	Strength int
}

var secure = map[string]bool{"psk": true, "8021x": true, "wep": true}

// dimBars is the escape iwctl uses to grey out the unlit signal bars
const dimBars = "\x1b[1;90m"

// ParseNetworks reads `iwctl station <dev> get-networks`. Open networks are
// dropped and only the first line for a name is kept.
func ParseNetworks(out string) []Network {
	var nets []Network
	seen := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		fields := parse.Fields(line)
		if len(fields) > 0 && fields[0] == ">" {
			fields = fields[1:]
		}
		if len(fields) < 3 {
			continue
		}
		sec := fields[len(fields)-2]
		if !secure[strings.ToLower(sec)] {
			continue
		}
		name := strings.Join(fields[:len(fields)-2], " ")
		if seen[name] {
			continue
		}
		seen[name] = true
		nets = append(nets, Network{
			Name:     name,
			Security: sec,
			Strength: strength(line),
		})
	}
	return nets
}

// strength counts the stars before the dimmed part of the last signal column
func strength(line string) int {
	raw := strings.Fields(line)
	signal := ""
	for i := len(raw) - 1; i >= 0; i-- {
		if strings.Contains(raw[i], "*") {
			signal = raw[i]
			break
		}
	}
	if i := strings.Index(signal, dimBars); i >= 0 {
		signal = signal[:i]
	}
	return strings.Count(parse.StripANSI(signal), "*")
}

// SignalIcon maps a strength of 1 to 4 bars onto icons
func SignalIcon(icons []string, n int) string {
	if len(icons) == 0 {
		return ""
	}
	i := n - 1
	if i < 0 {
		i = 0
	}
	if i >= len(icons) {
		i = len(icons) - 1
	}
	return icons[i]
}
