package config

// Layout constants.
const (
	// DefaultFocusCounter is the initially focused tank (1-based).
	DefaultFocusCounter = 1

	// MinCardWidth is the minimum width for a tank card.
	MinCardWidth = 14

	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 60

	// TargetBarWidth is the preferred width for the alarm progress bar.
	TargetBarWidth = 40

	// MinBarWidth is the minimum width for the alarm progress bar.
	MinBarWidth = 10
)

// Display limits.
const (
	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)

// Prompt copy.
const (
	ActivatePrompt = "Is the water reservoir full?"
	AlarmTitle     = "Service interval reached"
	AlarmMessage   = "Four hours have passed. Check the tanks and top up the reservoir."
	FilterTitle    = "Filter check"
	FilterMessage  = "Two tanks were restarted. Clean the filters before continuing."
	AckButton      = "OK"
	StoppedNotice  = "Activate the service before starting a tank."
)
