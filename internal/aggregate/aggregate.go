// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

// Package aggregate reduces the enriched event stream into independent
// summary tables. Every builder is a pure grouped reduction over the
// event and session slices; no table feeds another, and all orderings
// are explicit with stable tie-breaks so repeated runs produce
// byte-identical output.
package aggregate

import (
	"sort"

	"github.com/tomtom215/rewind/internal/models"
)

// Heatmap counts events per (weekday, hour), Monday through Sunday.
// All seven rows and all 24 hour columns are always emitted.
func Heatmap(events []models.WatchEvent) []models.HeatmapRow {
	byDay := make(map[string][]int, len(models.Weekdays))
	for _, day := range models.Weekdays {
		byDay[day] = make([]int, 24)
	}

	for _, ev := range events {
		byDay[ev.Weekday][ev.Hour]++
	}

	rows := make([]models.HeatmapRow, len(models.Weekdays))
	for i, day := range models.Weekdays {
		rows[i] = models.HeatmapRow{Weekday: day, Counts: byDay[day]}
	}
	return rows
}

// TopChannels aggregates per-channel counts and minutes and returns the
// top n channels by video count (ties broken by channel name).
func TopChannels(events []models.WatchEvent, n int) []models.ChannelStats {
	byChannel := make(map[string]*models.ChannelStats)
	for _, ev := range events {
		st, ok := byChannel[ev.Channel]
		if !ok {
			st = &models.ChannelStats{Channel: ev.Channel}
			byChannel[ev.Channel] = st
		}
		st.Videos++
		st.Minutes += ev.DurationMinutes
	}

	stats := make([]models.ChannelStats, 0, len(byChannel))
	for _, st := range byChannel {
		st.AvgDuration = st.Minutes / float64(st.Videos)
		stats = append(stats, *st)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Videos != stats[j].Videos {
			return stats[i].Videos > stats[j].Videos
		}
		return stats[i].Channel < stats[j].Channel
	})

	if n > 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// Categories aggregates per-category counts and minutes, sorted by
// total minutes descending (ties broken by category name).
func Categories(events []models.WatchEvent) []models.CategoryStats {
	byCategory := make(map[string]*models.CategoryStats)
	for _, ev := range events {
		st, ok := byCategory[ev.Category]
		if !ok {
			st = &models.CategoryStats{Category: ev.Category}
			byCategory[ev.Category] = st
		}
		st.Videos++
		st.Minutes += ev.DurationMinutes
	}

	stats := make([]models.CategoryStats, 0, len(byCategory))
	for _, st := range byCategory {
		stats = append(stats, *st)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Minutes != stats[j].Minutes {
			return stats[i].Minutes > stats[j].Minutes
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// Topics aggregates per-topic counts and minutes, sorted by video count
// descending (ties broken by topic label).
func Topics(events []models.WatchEvent) []models.TopicStats {
	byTopic := make(map[string]*models.TopicStats)
	for _, ev := range events {
		st, ok := byTopic[ev.Topic]
		if !ok {
			st = &models.TopicStats{Topic: ev.Topic}
			byTopic[ev.Topic] = st
		}
		st.Videos++
		st.Minutes += ev.DurationMinutes
	}

	stats := make([]models.TopicStats, 0, len(byTopic))
	for _, st := range byTopic {
		stats = append(stats, *st)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Videos != stats[j].Videos {
			return stats[i].Videos > stats[j].Videos
		}
		return stats[i].Topic < stats[j].Topic
	})
	return stats
}

// Sessions builds the per-session detail table, ordered by session id.
// Binge flags are read from the member events, where the deriver
// broadcast them.
func Sessions(events []models.WatchEvent, sessions []models.Session) []models.SessionStats {
	watchMinutes := make(map[int]float64, len(sessions))
	binge := make(map[int]bool, len(sessions))
	for _, ev := range events {
		watchMinutes[ev.SessionID] += ev.DurationMinutes
		if ev.IsBingeSession {
			binge[ev.SessionID] = true
		}
	}

	stats := make([]models.SessionStats, len(sessions))
	for i, s := range sessions {
		stats[i] = models.SessionStats{
			SessionID:       s.ID,
			Videos:          s.VideoCount,
			DurationMinutes: s.DurationMinutes,
			WatchMinutes:    watchMinutes[s.ID],
			Start:           s.Start,
			End:             s.End,
			IsBinge:         binge[s.ID],
		}
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].SessionID < stats[j].SessionID
	})
	return stats
}

// BingeSessions filters the session table down to binge sessions only.
func BingeSessions(sessions []models.SessionStats) []models.SessionStats {
	binges := make([]models.SessionStats, 0, len(sessions))
	for _, s := range sessions {
		if s.IsBinge {
			binges = append(binges, s)
		}
	}
	return binges
}

// Daily aggregates per-day counts, minutes and distinct session count,
// ordered by date ascending.
func Daily(events []models.WatchEvent) []models.DailyStats {
	type dayAcc struct {
		stats    models.DailyStats
		sessions map[int]struct{}
	}

	byDate := make(map[string]*dayAcc)
	for _, ev := range events {
		date := ev.WatchedAt.Format("2006-01-02")
		acc, ok := byDate[date]
		if !ok {
			acc = &dayAcc{
				stats:    models.DailyStats{Date: date},
				sessions: make(map[int]struct{}),
			}
			byDate[date] = acc
		}
		acc.stats.Videos++
		acc.stats.Minutes += ev.DurationMinutes
		acc.sessions[ev.SessionID] = struct{}{}
	}

	stats := make([]models.DailyStats, 0, len(byDate))
	for _, acc := range byDate {
		acc.stats.Sessions = len(acc.sessions)
		stats = append(stats, acc.stats)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})
	return stats
}
