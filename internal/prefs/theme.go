package prefs

import "fmt"

// Theme is the editor colour scheme.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
	ThemeGray
)

var themeNames = map[Theme]string{
	ThemeDark:  "DARK",
	ThemeLight: "LIGHT",
	ThemeGray:  "GRAY",
}

func (t Theme) String() string {
	if name, ok := themeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Theme(%d)", int(t))
}

// Set parses a theme by its exact constant name.
func (t *Theme) Set(name string) error {
	for theme, n := range themeNames {
		if n == name {
			*t = theme
			return nil
		}
	}
	return fmt.Errorf("unknown theme %q", name)
}
