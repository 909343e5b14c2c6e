package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`              // IANA timezone name or "Local"
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether reminders are sent
	ReminderGraceMin     int    `json:"reminder_grace_min"`    // how late a reminder may still fire
	ShowDailyQuotes      bool   `json:"show_daily_quotes"`
	WeeklyAveragePolicy  string `json:"weekly_average_policy"` // include_empty or exclude_empty
	MaxActiveHabits      int    `json:"max_active_habits"`
}
