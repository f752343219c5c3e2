package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// GOOS values the opener knows how to drive
const (
	GOOSDarwin  = "darwin"
	GOOSWindows = "windows"
	GOOSLinux   = "linux"
	GOOSAndroid = "android"
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	RundllCommand  = "rundll32"
	AMCommand      = "am"
)

// Command parameters
const (
	MacOSAppFlag      = "-a"
	URLHandlerEntry   = "url.dll,FileProtocolHandler"
	AndroidStartVerb  = "start"
	AndroidActionFlag = "-a"
	AndroidDataFlag   = "-d"
	AndroidViewAction = "android.intent.action.VIEW"
)

// Opener names an application a target may be opened with.
type Opener string

// Known openers. Nothing else is ever launched by the open command.
const (
	OpenerDefault      Opener = ""
	OpenerFirefox      Opener = "firefox"
	OpenerGoogleChrome Opener = "google chrome"
	OpenerChromium     Opener = "chromium"
	OpenerSafari       Opener = "safari"
	OpenerOpen         Opener = "open"
	OpenerStart        Opener = "start"
	OpenerXDGOpen      Opener = "xdg-open"
	OpenerGio          Opener = "gio"
	OpenerGnomeOpen    Opener = "gnome-open"
	OpenerKDEOpen      Opener = "kde-open"
	OpenerWSLView      Opener = "wslview"
)

var (
	// ErrUnsupportedOS is returned when no opener exists for the running OS.
	ErrUnsupportedOS = errors.New("unsupported operating system")
	// ErrUnknownOpener is returned for a with value outside the known openers.
	ErrUnknownOpener = errors.New("unknown opener")
	// ErrOpenerUnavailable is returned for a known opener that does not exist
	// on the target OS.
	ErrOpenerUnavailable = errors.New("opener not available on this platform")
)

// application bundle names passed to open -a
var darwinApps = map[Opener]string{
	OpenerFirefox:      "Firefox",
	OpenerGoogleChrome: "Google Chrome",
	OpenerChromium:     "Chromium",
	OpenerSafari:       "Safari",
}

var windowsPrograms = map[Opener]string{
	OpenerFirefox:      "firefox",
	OpenerGoogleChrome: "chrome",
	OpenerChromium:     "chromium",
}

var unixPrograms = map[Opener][]string{
	OpenerFirefox:      {"firefox"},
	OpenerGoogleChrome: {"google-chrome"},
	OpenerChromium:     {"chromium"},
	OpenerXDGOpen:      {XDGOpenCommand},
	OpenerGio:          {"gio", "open"},
	OpenerGnomeOpen:    {"gnome-open"},
	OpenerKDEOpen:      {"kde-open"},
	OpenerWSLView:      {"wslview"},
}

// ParseOpener maps a with value to a known opener. The empty string selects
// the system default.
func ParseOpener(name string) (Opener, error) {
	switch o := Opener(name); o {
	case OpenerDefault, OpenerFirefox, OpenerGoogleChrome, OpenerChromium, OpenerSafari,
		OpenerOpen, OpenerStart, OpenerXDGOpen, OpenerGio, OpenerGnomeOpen, OpenerKDEOpen, OpenerWSLView:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOpener, name)
	}
}

// OpenCommandFor builds the program and arguments that open target on goos.
// with must name a known opener; empty means the system default. The target
// is always passed as a single argument and never through a command shell.
func OpenCommandFor(goos, target, with string) (string, []string, error) {
	if target == "" {
		return "", nil, fmt.Errorf("open target is empty")
	}
	opener, err := ParseOpener(with)
	if err != nil {
		return "", nil, err
	}
	unavailable := fmt.Errorf("%w: %s on %s", ErrOpenerUnavailable, opener, goos)

	switch goos {
	case GOOSDarwin:
		if opener == OpenerDefault || opener == OpenerOpen {
			return OpenCommand, []string{target}, nil
		}
		app, ok := darwinApps[opener]
		if !ok {
			return "", nil, unavailable
		}
		return OpenCommand, []string{MacOSAppFlag, app, target}, nil
	case GOOSWindows:
		if opener == OpenerDefault || opener == OpenerStart {
			return RundllCommand, []string{URLHandlerEntry, target}, nil
		}
		program, ok := windowsPrograms[opener]
		if !ok {
			return "", nil, unavailable
		}
		return program, []string{target}, nil
	case GOOSAndroid:
		if opener != OpenerDefault {
			return "", nil, unavailable
		}
		return AMCommand, []string{AndroidStartVerb, AndroidActionFlag, AndroidViewAction, AndroidDataFlag, target}, nil
	case GOOSLinux, "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos":
		if opener == OpenerDefault {
			return XDGOpenCommand, []string{target}, nil
		}
		argv, ok := unixPrograms[opener]
		if !ok {
			return "", nil, unavailable
		}
		return argv[0], append(argv[1:len(argv):len(argv)], target), nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
	}
}

// OpenWithDefaultApp hands target to the system default application, or to
// the named opener. It returns once the opener has started; the opener is
// reaped in the background so a slow launcher never blocks the caller.
func OpenWithDefaultApp(ctx context.Context, target, with string) error {
	name, args, err := OpenCommandFor(runtime.GOOS, target, with)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// not tied to ctx: the launcher must outlive the request
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
