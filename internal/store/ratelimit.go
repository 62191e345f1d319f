package store

import (
	"math"
	"time"
)

// Paramètres du chemin heartbeat. L'état du rate limiter vit sur la ligne
// utilisateur (last_work_point_increment) : il survit aux redémarrages et
// reste cohérent entre plusieurs instances du service.
const (
	CooldownSeconds = 59
	Cooldown        = CooldownSeconds * time.Second

	HeartbeatUnit   = 1
	HeartbeatDevice = "heartbeat"

	DateLayout = "2006-01-02"
)

// Remaining renvoie l'attente restante avant le prochain heartbeat admissible.
// Zéro signifie admissible. La borne est inclusive : elapsed == Cooldown admet.
func Remaining(last *time.Time, now time.Time) time.Duration {
	if last == nil {
		return 0
	}
	elapsed := now.Sub(*last)
	if elapsed >= Cooldown {
		return 0
	}
	return Cooldown - elapsed
}

// RetrySeconds arrondit l'attente au plafond, pour le message "please wait Ns"
func RetrySeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
