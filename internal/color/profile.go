package color

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Profile names accepted in the display config.
const (
	ProfileAuto      = "auto"
	ProfileASCII     = "ascii"
	ProfileANSI      = "ansi"
	ProfileANSI256   = "ansi256"
	ProfileTrueColor = "truecolor"
)

// ParseProfile maps a profile name to a termenv profile. "auto" asks the
// terminal.
func ParseProfile(name string) (termenv.Profile, error) {
	switch name {
	case "", ProfileAuto:
		return termenv.NewOutput(os.Stdout).EnvColorProfile(), nil
	case ProfileASCII:
		return termenv.Ascii, nil
	case ProfileANSI:
		return termenv.ANSI, nil
	case ProfileANSI256:
		return termenv.ANSI256, nil
	case ProfileTrueColor:
		return termenv.TrueColor, nil
	default:
		return termenv.Ascii, fmt.Errorf("unknown color profile '%s'", name)
	}
}

// Apply sets the global lipgloss color profile. On an unknown name it falls
// back to plain text and returns the error so the caller can report it.
func Apply(name string) error {
	profile, err := ParseProfile(name)
	lipgloss.SetColorProfile(profile)
	return err
}
