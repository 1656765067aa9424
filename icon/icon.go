// Package icon renders UI symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns every supported icon style identifier.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

// Icon identifies a UI symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Progress
	Play
	Share
	Link
	Series
	Movie
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "🎉", nerd: "", plain: "✓", squares: "🟩"},
	Fail:     {emoji: "💀", nerd: "", plain: "✖", squares: "🟥"},
	Warn:     {emoji: "⚠️", nerd: "", plain: "!", squares: "🟨"},
	Progress: {emoji: "⏳", nerd: "", plain: "…", squares: "🟦"},
	Play:     {emoji: "▶️", nerd: "", plain: "▶", squares: "🟪"},
	Share:    {emoji: "📤", nerd: "", plain: "↗", squares: "🟧"},
	Link:     {emoji: "🔗", nerd: "", plain: "#", squares: "🟫"},
	Series:   {emoji: "📺", nerd: "", plain: "S", squares: "⬛"},
	Movie:    {emoji: "🎬", nerd: "", plain: "M", squares: "⬜"},
}

// Get returns the rendered string for an icon.
func Get(i Icon) string {
	if def, ok := icons[i]; ok {
		return def.get()
	}
	return ""
}
