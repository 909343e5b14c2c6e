package constants

const (
	SettingTimezone             = "timezone"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingReminderGraceMin     = "reminder_grace_min"
	SettingShowDailyQuotes      = "show_daily_quotes"
	SettingWeeklyAveragePolicy  = "weekly_average_policy"
	SettingMaxActiveHabits      = "max_active_habits"

	// Weekly average policies
	PolicyIncludeEmptyDays = "include_empty"
	PolicyExcludeEmptyDays = "exclude_empty"

	// Default Settings Values
	DefaultTimezone             = "Local"
	DefaultNotificationsEnabled = true
	DefaultReminderGraceMin     = 5
	DefaultShowDailyQuotes      = true
	DefaultWeeklyAveragePolicy  = PolicyIncludeEmptyDays
	DefaultMaxActiveHabits      = 3
)
