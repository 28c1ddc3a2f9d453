package dashboard

import (
	"strings"

	"github.com/bobmcallan/sentinel/internal/models"
)

// Tone is a display colour name. Renderers map tones to terminal colours.
type Tone string

const (
	ToneRed    Tone = "red"
	ToneOrange Tone = "orange"
	ToneYellow Tone = "yellow"
	ToneAmber  Tone = "amber"
	ToneBlue   Tone = "blue"
	ToneGreen  Tone = "green"
	ToneGray   Tone = "gray"
	ToneMuted  Tone = "muted"
)

// SeverityTone maps an alert severity to its timeline dot colour.
func SeverityTone(sev models.Severity) Tone {
	switch sev {
	case models.SeverityCritical:
		return ToneRed
	case models.SeverityHigh:
		return ToneOrange
	case models.SeverityMedium:
		return ToneYellow
	case models.SeverityLow:
		return ToneBlue
	default:
		return ToneGray
	}
}

// Impact icons, named after the glyphs the web dashboard used.
const (
	IconAlertCircle  = "AlertCircle"
	IconTrendingDown = "TrendingDown"
	IconTrendingUp   = "TrendingUp"
)

// Impact is the display bucket of a news impact score.
type Impact struct {
	Label string
	Tone  Tone
	Icon  string
}

// ImpactBucket classifies a news impact score. Medium impact is red while
// high impact is amber; both thresholds are inclusive.
func ImpactBucket(score float64) Impact {
	switch {
	case score >= 7:
		return Impact{Label: "High Impact", Tone: ToneAmber, Icon: IconAlertCircle}
	case score >= 5:
		return Impact{Label: "Medium Impact", Tone: ToneRed, Icon: IconTrendingDown}
	default:
		return Impact{Label: "Positive Impact", Tone: ToneGreen, Icon: IconTrendingUp}
	}
}

// Badge is a labelled, coloured tag.
type Badge struct {
	Label string
	Tone  Tone
}

// PolicyBadge labels a policy update by severity.
func PolicyBadge(sev models.Severity) Badge {
	switch sev {
	case models.SeverityHigh:
		return Badge{Label: "High Impact", Tone: ToneRed}
	case models.SeverityMedium:
		return Badge{Label: "Medium Impact", Tone: ToneBlue}
	default:
		return Badge{Label: "Low Impact", Tone: ToneGray}
	}
}

// ActionImpactBadge labels a playbook action's impact level (High, Medium, Low).
func ActionImpactBadge(level string) Badge {
	label := titleCase(level)
	switch label {
	case "High":
		return Badge{Label: "High Impact", Tone: ToneBlue}
	case "Medium":
		return Badge{Label: "Medium Impact", Tone: ToneGray}
	default:
		return Badge{Label: "Low Impact", Tone: ToneMuted}
	}
}

// EffortBadge labels a playbook action's effort level.
func EffortBadge(level string) Badge {
	return Badge{Label: titleCase(level) + " Effort", Tone: ToneMuted}
}

// StatusBadge marks completed actions green and pending ones amber.
func StatusBadge(a models.PlaybookAction) Badge {
	if a.Completed() {
		return Badge{Label: "Completed", Tone: ToneGreen}
	}
	return Badge{Label: "Take Action", Tone: ToneAmber}
}

// AssetTone colours an affected asset by its severity.
func AssetTone(severity string) Tone {
	switch severity {
	case "high":
		return ToneRed
	case "medium":
		return ToneBlue
	case "low":
		return ToneGray
	case "positive":
		return ToneGreen
	default:
		return ToneMuted
	}
}

// ResilienceTone colours a resilience score bar.
func ResilienceTone(score float64) Tone {
	switch {
	case score >= 70:
		return ToneGreen
	case score >= 40:
		return ToneAmber
	default:
		return ToneRed
	}
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
