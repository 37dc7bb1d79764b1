package ui

import (
	"fmt"
	"strconv"
)

// Internal prop keys carried by ui components.
const (
	propComponent = "_ui"
	propSpacing   = "_spacing"
	propPadding   = "_padding"
	propSize      = "_size"
	propColor     = "_color"
	propHeight    = "_height"
	propWeight    = "_weight"
	propAlign     = "_align"
	propJustify   = "_justify"
	propAs        = "_as"
)

// spaceScale maps spacing tokens to pixel sizes.
var spaceScale = map[string]string{
	"0": "0px",
	"1": "4px",
	"2": "8px",
	"3": "12px",
	"4": "16px",
	"5": "24px",
	"6": "32px",
	"7": "40px",
	"8": "48px",
	"9": "64px",
}

// fontScale maps size tokens to font size and line height.
var fontScale = map[string][2]string{
	"1": {"12px", "16px"},
	"2": {"14px", "20px"},
	"3": {"16px", "24px"},
	"4": {"18px", "26px"},
	"5": {"20px", "28px"},
	"6": {"24px", "30px"},
	"7": {"28px", "36px"},
	"8": {"35px", "40px"},
	"9": {"60px", "60px"},
}

var weights = map[string]string{
	"light":   "300",
	"regular": "400",
	"medium":  "500",
	"bold":    "700",
}

var alignments = map[string]string{
	"start":    "flex-start",
	"center":   "center",
	"end":      "flex-end",
	"baseline": "baseline",
	"stretch":  "stretch",
}

var justifications = map[string]string{
	"start":   "flex-start",
	"center":  "center",
	"end":     "flex-end",
	"between": "space-between",
}

// ColorName is a palette name.
type ColorName string

const (
	Gray   ColorName = "gray"
	Slate  ColorName = "slate"
	Red    ColorName = "red"
	Green  ColorName = "green"
	Blue   ColorName = "blue"
	Amber  ColorName = "amber"
	Indigo ColorName = "indigo"
	Accent ColorName = "accent"
)

// palette holds the twelve light-theme steps of each color.
var palette = map[ColorName][12]string{
	Gray:   {"#fcfcfc", "#f9f9f9", "#f0f0f0", "#e8e8e8", "#e0e0e0", "#d9d9d9", "#cecece", "#bbbbbb", "#8d8d8d", "#838383", "#646464", "#202020"},
	Slate:  {"#fcfcfd", "#f9f9fb", "#f0f0f3", "#e8e8ec", "#e0e1e6", "#d9d9e0", "#cdced6", "#b9bbc6", "#8b8d98", "#80838d", "#60646c", "#1c2024"},
	Red:    {"#fffcfc", "#fff7f7", "#feebec", "#ffdbdc", "#ffcdce", "#fdbdbe", "#f4a9aa", "#eb8e90", "#e5484d", "#dc3e42", "#ce2c31", "#641723"},
	Green:  {"#fbfefc", "#f4fbf6", "#e6f6eb", "#d6f1df", "#c4e8d1", "#adddc0", "#8eceaa", "#5bb98b", "#30a46c", "#2b9a66", "#218358", "#193b2d"},
	Blue:   {"#fbfdff", "#f4faff", "#e6f4fe", "#d5efff", "#c2e5ff", "#acd8fc", "#8ec8f6", "#5eb1ef", "#0090ff", "#0588f0", "#0d74ce", "#113264"},
	Amber:  {"#fefdfb", "#fefbe9", "#fff7c2", "#ffee9c", "#fbe577", "#f3d673", "#e9c162", "#e2a336", "#ffc53d", "#ffba18", "#ab6400", "#4f3422"},
	Indigo: {"#fdfdfe", "#f7f9ff", "#edf2fe", "#e1e9ff", "#d2deff", "#c1d0ff", "#abbdf9", "#8da4ef", "#3e63dd", "#3358d4", "#3a5bc7", "#1f2d5c"},
}

// accentColor is the palette the accent alias resolves to.
const accentColor = Indigo

// ColorRef is a reference to one step of a palette color.
type ColorRef struct {
	Name  ColorName
	Shade int
}

// Var returns the CSS custom property reference, e.g. "var(--gray-11)".
func (c ColorRef) Var() string {
	return "var(--" + string(c.Name) + "-" + strconv.Itoa(c.Shade) + ")"
}

// String implements fmt.Stringer.
func (c ColorRef) String() string {
	return fmt.Sprintf("%s.%d", c.Name, c.Shade)
}

// Valid reports whether the color names a known palette and a shade in 1..12.
func (c ColorRef) Valid() bool {
	if c.Shade < 1 || c.Shade > 12 {
		return false
	}
	if c.Name == Accent {
		return true
	}
	_, ok := palette[c.Name]
	return ok
}

// IsGray reports whether the color belongs to a neutral palette.
func (c ColorRef) IsGray() bool {
	return c.Name == Gray || c.Name == Slate
}
