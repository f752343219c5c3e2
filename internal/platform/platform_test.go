package platform

import (
	"errors"
	"runtime"
	"testing"
)

func expectedIdentifier() string {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	default:
		return runtime.GOOS
	}
}

func TestIdentifier_MatchesBuildTarget(t *testing.T) {
	got := Identifier()
	if got == "" {
		t.Fatal("Identifier should not be empty")
	}
	if got != expectedIdentifier() {
		t.Errorf("Identifier() = %q, expected %q", got, expectedIdentifier())
	}
}

func TestIdentifier_IsConstant(t *testing.T) {
	first := Identifier()
	for i := 0; i < 100; i++ {
		if got := Identifier(); got != first {
			t.Fatalf("Identifier changed between calls: %q then %q", first, got)
		}
	}
}

func TestIsMobile(t *testing.T) {
	expected := runtime.GOOS == "android" || runtime.GOOS == "ios"
	if IsMobile() != expected {
		t.Errorf("IsMobile() = %v, expected %v on %s", IsMobile(), expected, runtime.GOOS)
	}
}

func TestOpenCommandFor(t *testing.T) {
	tests := []struct {
		goos         string
		target       string
		with         string
		expectedName string
		expectedArgs []string
	}{
		{GOOSDarwin, "https://example.com", "", OpenCommand, []string{"https://example.com"}},
		{GOOSDarwin, "https://example.com", "open", OpenCommand, []string{"https://example.com"}},
		{GOOSDarwin, "/tmp/a.txt", "google chrome", OpenCommand, []string{MacOSAppFlag, "Google Chrome", "/tmp/a.txt"}},
		{GOOSWindows, "https://example.com", "", RundllCommand, []string{URLHandlerEntry, "https://example.com"}},
		{GOOSWindows, "https://x.y/&calc", "", RundllCommand, []string{URLHandlerEntry, "https://x.y/&calc"}},
		{GOOSWindows, "https://x.y/|calc^", "start", RundllCommand, []string{URLHandlerEntry, "https://x.y/|calc^"}},
		{GOOSWindows, "C:\\a.txt", "firefox", "firefox", []string{"C:\\a.txt"}},
		{GOOSLinux, "https://example.com", "", XDGOpenCommand, []string{"https://example.com"}},
		{GOOSLinux, "/tmp/a.txt", "firefox", "firefox", []string{"/tmp/a.txt"}},
		{GOOSLinux, "/tmp/a.txt", "google chrome", "google-chrome", []string{"/tmp/a.txt"}},
		{GOOSLinux, "https://example.com", "gio", "gio", []string{"open", "https://example.com"}},
		{"freebsd", "https://example.com", "", XDGOpenCommand, []string{"https://example.com"}},
		{GOOSAndroid, "https://example.com", "", AMCommand, []string{AndroidStartVerb, AndroidActionFlag, AndroidViewAction, AndroidDataFlag, "https://example.com"}},
	}

	for _, test := range tests {
		name, args, err := OpenCommandFor(test.goos, test.target, test.with)
		if err != nil {
			t.Errorf("OpenCommandFor(%s, %s) returned error: %v", test.goos, test.target, err)
			continue
		}
		if name != test.expectedName {
			t.Errorf("OpenCommandFor(%s) name = %s, expected %s", test.goos, name, test.expectedName)
		}
		if len(args) != len(test.expectedArgs) {
			t.Errorf("OpenCommandFor(%s) args = %v, expected %v", test.goos, args, test.expectedArgs)
			continue
		}
		for i := range args {
			if args[i] != test.expectedArgs[i] {
				t.Errorf("OpenCommandFor(%s) arg %d = %q, expected %q", test.goos, i, args[i], test.expectedArgs[i])
			}
		}
	}
}

func TestOpenCommandFor_Errors(t *testing.T) {
	if _, _, err := OpenCommandFor(GOOSLinux, "", ""); err == nil {
		t.Error("Expected error for empty target")
	}

	_, _, err := OpenCommandFor("plan9", "https://example.com", "")
	if !errors.Is(err, ErrUnsupportedOS) {
		t.Errorf("Expected ErrUnsupportedOS, got %v", err)
	}
}

func TestOpenCommandFor_NeverUsesCommandShell(t *testing.T) {
	for _, target := range []string{"https://x.y/&calc", "https://x.y/a|b", "https://x.y/%PATH%", "https://x.y/^&whoami"} {
		name, args, err := OpenCommandFor(GOOSWindows, target, "")
		if err != nil {
			t.Fatalf("OpenCommandFor(%q) returned error: %v", target, err)
		}
		if name == "cmd" || name == "cmd.exe" {
			t.Errorf("OpenCommandFor(%q) runs through cmd", target)
		}
		if args[len(args)-1] != target {
			t.Errorf("OpenCommandFor(%q) last arg = %q, expected the target unchanged", target, args[len(args)-1])
		}
	}
}

func TestOpenCommandFor_RejectsUnknownOpener(t *testing.T) {
	for _, goos := range []string{GOOSDarwin, GOOSWindows, GOOSLinux} {
		for _, with := range []string{"/tmp/anything.sh", "sh", "notepad", "firefox; rm -rf ~"} {
			_, _, err := OpenCommandFor(goos, "https://example.com", with)
			if !errors.Is(err, ErrUnknownOpener) {
				t.Errorf("OpenCommandFor(%s, with=%q) err = %v, expected ErrUnknownOpener", goos, with, err)
			}
		}
	}
}

func TestOpenCommandFor_UnavailableOpener(t *testing.T) {
	tests := []struct {
		goos string
		with string
	}{
		{GOOSLinux, "safari"},
		{GOOSLinux, "start"},
		{GOOSDarwin, "xdg-open"},
		{GOOSWindows, "gio"},
		{GOOSAndroid, "firefox"},
	}

	for _, test := range tests {
		_, _, err := OpenCommandFor(test.goos, "https://example.com", test.with)
		if !errors.Is(err, ErrOpenerUnavailable) {
			t.Errorf("OpenCommandFor(%s, with=%q) err = %v, expected ErrOpenerUnavailable", test.goos, test.with, err)
		}
	}
}

func TestParseOpener(t *testing.T) {
	for _, name := range []string{"", "firefox", "google chrome", "chromium", "safari", "open", "start", "xdg-open", "gio", "gnome-open", "kde-open", "wslview"} {
		got, err := ParseOpener(name)
		if err != nil {
			t.Errorf("ParseOpener(%q) returned error: %v", name, err)
		}
		if string(got) != name {
			t.Errorf("ParseOpener(%q) = %q", name, got)
		}
	}
	if _, err := ParseOpener("Firefox"); !errors.Is(err, ErrUnknownOpener) {
		t.Errorf("ParseOpener is case sensitive, got %v", err)
	}
}
