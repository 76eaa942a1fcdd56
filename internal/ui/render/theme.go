package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	ColumnBg    tcell.Color
	ColumnFg    tcell.Color
	HiddenFg    tcell.Color
	TrailBg     tcell.Color
	TrailFg     tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	DirectoryFg tcell.Color
	SymlinkFg   tcell.Color
	FileFg      tcell.Color
	FlaggedFg   tcell.Color
	StatusBg    tcell.Color
	StatusFg    tcell.Color
	ErrorFg     tcell.Color
	PreviewFg   tcell.Color
	DimFg       tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		ColumnBg:    tcell.ColorDefault,
		ColumnFg:    tcell.ColorDefault,
		HiddenFg:    tcell.ColorLightSlateGray,
		TrailBg:     tcell.Color238,
		TrailFg:     tcell.ColorWhite,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		DirectoryFg: tcell.Color33,
		SymlinkFg:   tcell.Color51,
		FileFg:      tcell.ColorDefault,
		FlaggedFg:   tcell.ColorYellow,
		StatusBg:    tcell.ColorDefault,
		StatusFg:    tcell.ColorDefault,
		ErrorFg:     tcell.ColorRed,
		PreviewFg:   tcell.ColorDefault,
		DimFg:       tcell.Color244,
	}
}
