package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/pierre-app/pierre-desktop/internal/ipc"
	"github.com/pierre-app/pierre-desktop/internal/manifest"
)

// Command names the UI invokes
var (
	cmdGetPlatform = ipc.NameGetPlatform
	cmdShellOpen   = ipc.PluginCommandName("shell", "open")
)

// Bridge is the request/response channel to native code.
type Bridge interface {
	Invoke(ctx context.Context, req ipc.Request) ipc.Response
}

// RootUI is the content of the main window.
type RootUI struct {
	window   fyne.Window
	bridge   Bridge
	manifest *manifest.Manifest
	logger   *slog.Logger

	platform string

	titleLabel    *widget.Label
	platformLabel *widget.Label
	statusLabel   *widget.Label
	homepageBtn   *widget.Button

	// in-flight invocations started from event handlers
	pending sync.WaitGroup
}

// NewRootUI builds the window content and queries the platform once.
func NewRootUI(window fyne.Window, bridge Bridge, m *manifest.Manifest, logger *slog.Logger) *RootUI {
	if logger == nil {
		logger = slog.Default()
	}

	ui := &RootUI{
		window:   window,
		bridge:   bridge,
		manifest: m,
		logger:   logger,
	}

	ui.setupUI()
	ui.refreshPlatform()
	return ui
}

// Platform returns the identifier reported by native code, or "" when the
// query failed.
func (ui *RootUI) Platform() string {
	return ui.platform
}

func (ui *RootUI) setupUI() {
	title := ui.manifest.ProductName
	if ui.manifest.Version != "" {
		title += MiddleDotSeparator + "v" + ui.manifest.Version
	}

	ui.titleLabel = widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ui.platformLabel = widget.NewLabel(fmt.Sprintf(PlatformLabelFormat, IconPlatform, DashPlaceholder))
	ui.statusLabel = widget.NewLabel(StatusReady)
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	ui.homepageBtn = widget.NewButton(IconLink+" "+OpenHomepageText, ui.onOpenHomepage)
	if ui.manifest.Homepage == "" || !ui.manifest.Plugins.Shell.Open {
		ui.homepageBtn.Disable()
	}

	content := container.NewVBox(
		ui.titleLabel,
		widget.NewSeparator(),
		ui.platformLabel,
		ui.homepageBtn,
		ui.statusLabel,
	)
	ui.window.SetContent(container.NewPadded(content))
}

func (ui *RootUI) refreshPlatform() {
	resp := ui.invoke(ipc.Request{Cmd: cmdGetPlatform})
	if !resp.OK() {
		ui.showError(resp.Error)
		return
	}

	name, ok := resp.Value.(string)
	if !ok {
		ui.showError(ipc.Errorf(ipc.CodeCommandFailed, "unexpected platform value %v", resp.Value))
		return
	}
	ui.platform = name
	ui.platformLabel.SetText(fmt.Sprintf(PlatformLabelFormat, IconPlatform, name))
}

// onOpenHomepage runs on the event goroutine, so the request goes out on its
// own goroutine and the labels are updated back through fyne.Do.
func (ui *RootUI) onOpenHomepage() {
	args, err := json.Marshal(map[string]string{"path": ui.manifest.Homepage})
	if err != nil {
		ui.showError(ipc.Errorf(ipc.CodeInvalidArgs, "%v", err))
		return
	}

	ui.statusLabel.SetText(fmt.Sprintf(StatusOpening, ui.manifest.Homepage))
	ui.homepageBtn.Disable()

	ui.pending.Add(1)
	go func() {
		defer ui.pending.Done()
		resp := ui.invoke(ipc.Request{Cmd: cmdShellOpen, Args: args})
		fyne.Do(func() {
			ui.homepageBtn.Enable()
			if !resp.OK() {
				ui.showError(resp.Error)
				return
			}
			ui.statusLabel.SetText(StatusReady)
		})
	}()
}

func (ui *RootUI) invoke(req ipc.Request) ipc.Response {
	ctx, cancel := context.WithTimeout(context.Background(), InvokeTimeout)
	defer cancel()
	return ui.bridge.Invoke(ctx, req)
}

func (ui *RootUI) showError(err *ipc.Error) {
	ui.logger.Warn("command error", "code", err.Code, "message", err.Message)
	ui.statusLabel.SetText(fmt.Sprintf(StatusErrorFormat, IconError, err.Message))
}
