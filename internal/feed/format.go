package feed

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the time-of-day format used on every row.
const TimeLayout = "3:04:05 PM"

// FormatTime renders the local time of day for ts.
func FormatTime(ts time.Time) string {
	return ts.Local().Format(TimeLayout)
}

// FormatAmount renders a currency amount with two decimals, e.g. "$5.10".
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// ActivityText returns the templated headline for an activity.
func ActivityText(a Activity) string {
	switch p := a.Payload.(type) {
	case Follow:
		return a.Username + " followed!"
	case Donation:
		return a.Username + " donated " + FormatAmount(p.Amount) + "!"
	case Subscription:
		text := a.Username + " subscribed!"
		if note := subscriptionNote(p); note != "" {
			text += " " + note
		}
		return text
	default:
		return ""
	}
}

func subscriptionNote(s Subscription) string {
	var parts []string
	if s.Tier != "" {
		if strings.EqualFold(s.Tier, "prime") {
			parts = append(parts, "Prime")
		} else {
			parts = append(parts, "Tier "+s.Tier)
		}
	}
	if s.Gift {
		parts = append(parts, "gift")
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TierFromPlan maps a Twitch sub plan ("1000", "2000", "3000", "Prime") to the
// tier label used by Subscription.
func TierFromPlan(plan string) string {
	switch plan {
	case "1000":
		return "1"
	case "2000":
		return "2"
	case "3000":
		return "3"
	case "Prime", "prime":
		return "Prime"
	default:
		return plan
	}
}
