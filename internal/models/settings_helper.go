package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/tinyhabits/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingReminderGraceMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.ReminderGraceMin); err != nil {
				return Settings{}, fmt.Errorf("parsing reminder_grace_min: %w", err)
			}
		case constants.SettingShowDailyQuotes:
			settings.ShowDailyQuotes = value == "true"
		case constants.SettingWeeklyAveragePolicy:
			settings.WeeklyAveragePolicy = value
		case constants.SettingMaxActiveHabits:
			if _, err := fmt.Sscanf(value, "%d", &settings.MaxActiveHabits); err != nil {
				return Settings{}, fmt.Errorf("parsing max_active_habits: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingReminderGraceMin:     strconv.Itoa(settings.ReminderGraceMin),
		constants.SettingShowDailyQuotes:      strconv.FormatBool(settings.ShowDailyQuotes),
		constants.SettingWeeklyAveragePolicy:  settings.WeeklyAveragePolicy,
		constants.SettingMaxActiveHabits:      strconv.Itoa(settings.MaxActiveHabits),
	}
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		ReminderGraceMin:     constants.DefaultReminderGraceMin,
		ShowDailyQuotes:      constants.DefaultShowDailyQuotes,
		WeeklyAveragePolicy:  constants.DefaultWeeklyAveragePolicy,
		MaxActiveHabits:      constants.DefaultMaxActiveHabits,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.ReminderGraceMin == 0 {
		settings.ReminderGraceMin = constants.DefaultReminderGraceMin
	}
	if settings.WeeklyAveragePolicy == "" {
		settings.WeeklyAveragePolicy = constants.DefaultWeeklyAveragePolicy
	}
	if settings.MaxActiveHabits <= 0 {
		settings.MaxActiveHabits = constants.DefaultMaxActiveHabits
	}
}

// ValidateSetting checks a single key/value pair before it is stored.
func ValidateSetting(key, value string) error {
	switch key {
	case constants.SettingTimezone:
		return nil
	case constants.SettingNotificationsEnabled, constants.SettingShowDailyQuotes:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
	case constants.SettingReminderGraceMin:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer", key)
		}
	case constants.SettingMaxActiveHabits:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
	case constants.SettingWeeklyAveragePolicy:
		if value != constants.PolicyIncludeEmptyDays && value != constants.PolicyExcludeEmptyDays {
			return fmt.Errorf("%s must be %q or %q", key, constants.PolicyIncludeEmptyDays, constants.PolicyExcludeEmptyDays)
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
