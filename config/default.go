package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/color"
	"github.com/seriesgenius/seriesgenius/constant"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/style"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
	// Options, when set, are the only accepted values.
	Options []string
}

// Validate reports whether value may be assigned to the field.
func (f *Field) Validate(value any) error {
	if len(f.Options) == 0 {
		return nil
	}

	if s := fmt.Sprint(value); !lo.Contains(f.Options, s) {
		return fmt.Errorf("invalid value %q for %s, expected one of: %s", s, f.Key, strings.Join(f.Options, ", "))
	}
	return nil
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON includes both the current and the default value.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Options     []string `json:"options,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Options:     f.Options,
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string, options ...string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc, Options: options}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.CatalogPath, "", "Path to the catalog JSON file.\nEmpty means catalog.json in the config directory")
	register(key.SiteName, "SeriesGenius", "Site name shown in media titles and share texts")
	register(key.ShareBaseURL, "https://seriesgenius.app/", "Base address used when producing share links")
	register(key.ShareNative, true, "Try the platform share facility before the clipboard")
	register(key.ShareClipboard, true, "Copy share links to the clipboard when native sharing is unavailable")
	register(key.Player, "mpv", "Media player to use as the media element", "mpv")
	register(key.PlayerNativeHLS, false, "Let the player open .m3u8 manifests directly instead of the built-in stream client")
	register(key.PlayerAutoplay, true, "Start playback as soon as media is loaded")
	register(key.PlayerEmbedApp, "", "Application used to open embed players (YouTube, Vimeo, Facebook).\nEmpty means the system default handler")
	register(key.HLSMaxBandwidth, 0, "Highest variant bandwidth (bits/s) to select from a multivariant manifest.\n0 means no limit")
	register(key.HLSRetries, 3, "Attempts per manifest request before a network error becomes fatal")
	register(key.HLSLiveRefresh, true, "Refresh live playlists while a stream is attached")
	register(key.InsightsAPIKey, "", "Gemini API key for the title assistant.\nEmpty disables it")
	register(key.InsightsModel, "gemini-2.5-flash", "Gemini model answering questions about titles")
	register(key.NetworkImpersonateTLS, false, "Fetch manifests with a browser TLS fingerprint")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUIShowURLs, false, "Show playback URLs under list items")
	register(key.IconsVariant, "plain", "Icons variant", "emoji", "nerd", "plain", "squares")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Log level, from less to most verbose", "panic", "fatal", "error", "warn", "info", "debug", "trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when printing help or version information")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"join":     strings.Join,
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}{{ if .Options }}
{{ blue "Options:" }} {{ join .Options ", " }}{{ end }}`))
