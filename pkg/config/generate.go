package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/polka-dots/polka/pkg/errors"
)

const generatedHeader = "# polka configuration\n\n"

// Generate renders the built-in defaults as TOML. With commented set every
// assignment is commented out, so the file documents the defaults without
// pinning them.
func Generate(commented bool) (string, error) {
	k, err := defaults()
	if err != nil {
		return "", err
	}
	out, err := encode(k.Raw())
	if err != nil || !commented {
		return out, err
	}
	return commentOut(out), nil
}

// GenerateEffective renders the configuration opts resolves to, after
// every layer is merged
func GenerateEffective(opts Options) (string, error) {
	raw, err := Raw(opts)
	if err != nil {
		return "", err
	}
	return encode(raw)
}

func encode(raw map[string]interface{}) (string, error) {
	data, err := toml.Marshal(raw)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return generatedHeader + string(data), nil
}

// commentOut prefixes assignments with "# ". Table headers stay so each
// commented key still sits under its table; array table headers are
// commented with their keys.
func commentOut(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || isTableHeader(trimmed) {
			continue
		}
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n")
}

func isTableHeader(s string) bool {
	return strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "[[") && strings.HasSuffix(s, "]")
}
