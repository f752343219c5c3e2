package ui

import "time"

// Icons (emojis/symbols)
const (
	IconPlatform = "💻"
	IconLink     = "🔗"
	IconError    = "❌"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Labels
const (
	PlatformLabelFormat = "%s Platform: %s"
	OpenHomepageText    = "Open website"
	StatusReady         = "Ready"
	StatusOpening       = "Opening %s..."
	StatusErrorFormat   = "%s %s"
)

// Bridge call timeouts
const (
	InvokeTimeout = 5 * time.Second
)
