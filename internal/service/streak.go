package service

import (
	"sort"
	"time"

	model "github.com/WordPulse/WordPulse-backend/internal/models"
	"github.com/WordPulse/WordPulse-backend/internal/store"
)

const (
	// RetentionPoints est le total journalier minimal pour qu'un jour compte
	// dans une série (borne inclusive)
	RetentionPoints = 5
	// MaxStreakDays borne la marche arrière de la série courante
	MaxStreakDays = 365
)

// CurrentStreak marche en arrière depuis aujourd'hui, un jour à la fois, et
// s'arrête au premier jour sous le seuil ou sans données. L'ancre sur
// aujourd'hui est volontaire : un jour courant encore vide casse la série,
// il n'est pas sauté.
func CurrentStreak(totals []model.DayTotal, today time.Time) int {
	byDay := make(map[string]int, len(totals))
	for _, t := range totals {
		byDay[t.Date] = t.Points
	}

	streak := 0
	day := today
	for i := 0; i < MaxStreakDays; i++ {
		if byDay[day.Format(store.DateLayout)] < RetentionPoints {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak est indépendant de l'ancre : scan ascendant unique sur tout
// l'historique. Gardé séparé de CurrentStreak — unifier les deux parcours
// changerait silencieusement la sémantique de la série courante.
func LongestStreak(totals []model.DayTotal) int {
	days := make([]model.DayTotal, len(totals))
	copy(days, totals)
	// Les dates ISO se trient lexicographiquement
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	longest, run := 0, 0
	var prev time.Time
	havePrev := false
	for _, d := range days {
		date, err := time.Parse(store.DateLayout, d.Date)
		if err != nil {
			continue
		}
		if d.Points < RetentionPoints {
			run = 0
			havePrev = false
			continue
		}
		if havePrev && date.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		prev = date
		havePrev = true
		if run > longest {
			longest = run
		}
	}
	return longest
}
