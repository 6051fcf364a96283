// Package icon provides a configurable icon registry with multiple display variants.
package icon

import (
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/key"
	"github.com/vidfeed-cli/vidfeed/style"
)

// Icon identifies a single glyph in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Question
	Mark
	Progress
	Link
	Play
	Pause
	Buffer
	Ad
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "[ok]", kaomoji: "(•̀ᴗ•́)و", squares: "[#]"},
	Fail:     {emoji: "❌", nerd: "", plain: "[fail]", kaomoji: "(╥﹏╥)", squares: "[x]"},
	Question: {emoji: "❓", nerd: "", plain: "[?]", kaomoji: "(￢ ￢)", squares: "[?]"},
	Mark:     {emoji: "🔖", nerd: "", plain: "[*]", kaomoji: "(☆▽☆)", squares: "[*]"},
	Progress: {emoji: "⏳", nerd: "", plain: "[~]", kaomoji: "(¬‿¬)", squares: "[~]"},
	Link:     {emoji: "🔗", nerd: "", plain: "[->]", kaomoji: "(つ◉益◉)つ", squares: "[>]"},
	Play:     {emoji: "▶️", nerd: "", plain: "[>]", kaomoji: "ᕕ( ᐛ )ᕗ", squares: "[>]"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "[||]", kaomoji: "(￣o￣)zzz", squares: "[=]"},
	Buffer:   {emoji: "🌀", nerd: "", plain: "[...]", kaomoji: "(・_・;)", squares: "[.]"},
	Ad:       {emoji: "📢", nerd: "", plain: "[ad]", kaomoji: "(£ω£)", squares: "[$]"},
}

// AvailableVariants lists every recognized value for the icons variant option.
var AvailableVariants = []string{"emoji", "nerd", "plain", "kaomoji", "squares"}

// Get resolves an icon to its string form according to the configured variant.
func Get(icon Icon) string {
	def, ok := icons[icon]
	if !ok {
		return ""
	}

	switch viper.GetString(key.IconsVariant) {
	case "emoji":
		return def.emoji
	case "nerd":
		return def.nerd
	case "kaomoji":
		return def.kaomoji
	case "squares":
		return def.squares
	default:
		return def.plain
	}
}

// Colored returns the icon string wrapped in a semantic color.
func (i Icon) Colored() string {
	s := Get(i)
	switch i {
	case Success:
		return style.Bold(style.Fg(style.Green)(s))
	case Fail:
		return style.Bold(style.Fg(style.Red)(s))
	case Progress, Buffer:
		return style.Bold(style.Fg(style.Yellow)(s))
	default:
		return s
	}
}
