package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stepform/pkg/model"
)

func (w *Wizard) serialize(record model.Record) ([]byte, error) {
	return Serialize(record, w.outputFormat)
}

// Serialize encodes a record in the requested format.
func Serialize(record model.Record, format OutputFormat) ([]byte, error) {
	values := record.Map()
	switch format {
	case OutputFormatYAML:
		return yaml.Marshal(values)
	case OutputFormatFormURLEncoded:
		return []byte(formEncode(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	case OutputFormatJSON, "":
		return json.MarshalIndent(values, "", "  ")
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", format)
	}
}

func formEncode(values map[string]any) string {
	out := url.Values{}
	for key, value := range values {
		if value == nil {
			continue
		}
		out.Set(key, fmt.Sprint(value))
	}
	return out.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%v\n", key, values[key])
	}
	return b.String()
}
