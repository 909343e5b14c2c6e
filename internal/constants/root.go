package constants

import "time"

const (
	AppName           = "tinyhabits"
	DefaultConfigPath = "~/.config/tinyhabits/tinyhabits.db"
	Version           = "v0.3.0"

	// DateFormat is the day key format used for entries (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the reminder time format (HH:MM)
	TimeFormat = "15:04"

	// Entry status values as stored on disk
	StatusPending = "pending"
	StatusDone    = "done"
	StatusSkipped = "skipped"

	// Stats window
	WeekWindowDays = 7

	// Increment step is target/IncrementDivisor, never less than 1
	IncrementDivisor = 4

	// Best-day sentinel shown before any habit has been completed
	NoBestDayLabel  = "—"
	NoBestDayDetail = "Complete a habit to unlock insights."

	// Reminder identifiers are ReminderIDPrefix + habit id + "-" + index
	ReminderIDPrefix = "habit-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "tinyhabits-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.tinyhabits"
	TrayProcessPrefix      = "tinyhabits-tray"
)
