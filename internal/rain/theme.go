package rain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownTheme is returned when a theme name is not registered.
var ErrUnknownTheme = errors.New("unknown theme")

// Color is an ANSI SGR foreground code.
type Color int

// Foreground colors.
const (
	White     Color = 97
	Red       Color = 91
	DarkRed   Color = 31
	Green     Color = 92
	DarkGreen Color = 32
	Blue      Color = 94
	DarkBlue  Color = 34
)

// Theme picks the trail colors. Heads are always White.
type Theme struct {
	Name   string
	Dim    Color
	Bright Color
	Head   Color
}

var themes = map[string]Theme{
	"green": {Name: "green", Dim: DarkGreen, Bright: Green, Head: White},
	"red":   {Name: "red", Dim: DarkRed, Bright: Red, Head: White},
	"blue":  {Name: "blue", Dim: DarkBlue, Bright: Blue, Head: White},
}

// DefaultTheme is the classic green rain.
var DefaultTheme = themes["green"]

// ThemeByName looks up a theme case-insensitively.
func ThemeByName(name string) (Theme, error) {
	t, ok := themes[strings.ToLower(name)]
	if !ok {
		return Theme{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

// ThemeNames lists the registered themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
