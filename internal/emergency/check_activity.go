package emergency

import (
	"fmt"

	"elderguard/internal/models"
)

// checkEating 检查4：长时间未进食
// ≥2 天为医疗紧急（critical），恰好 1 天为预警（medium）
func (d *Detector) checkEating(activity models.Fields) *models.EmergencyCandidate {
	daysWithoutEating := activity.Int("days_without_eating", 0)

	if daysWithoutEating >= daysWithoutEatingLimit {
		return &models.EmergencyCandidate{
			Type:     models.EmergencyNoEating,
			Severity: models.SeverityCritical,
			Message:  fmt.Sprintf("🚨 URGENT: No meals detected for %d days!", daysWithoutEating),
			Action: "Contact IMMEDIATELY to ensure food access, appetite, and ability to eat. " +
				"This may indicate serious health issues or inability to prepare food.",
		}
	}

	if daysWithoutEating == 1 {
		return &models.EmergencyCandidate{
			Type:     models.EmergencyMissedMeals,
			Severity: models.SeverityMedium,
			Message:  "No meals detected for the past day.",
			Action:   "Check in to verify eating status and food availability.",
		}
	}

	return nil
}

// checkInactivity 检查5：长时间无活动
// ≥18 小时为 high，≥12 小时为 medium
func (d *Detector) checkInactivity(activity models.Fields) *models.EmergencyCandidate {
	maxInactivity := activity.Float("max_inactivity_hours", 0)

	if maxInactivity >= inactivityHoursHigh {
		return &models.EmergencyCandidate{
			Type:     models.EmergencyProlongedInact,
			Severity: models.SeverityHigh,
			Message:  fmt.Sprintf("No movement detected for %.1f hours.", maxInactivity),
			Action: "Contact immediately to verify safety. " +
				"Prolonged inactivity may indicate medical emergency or inability to move.",
		}
	}

	if maxInactivity >= inactivityHoursMedium {
		return &models.EmergencyCandidate{
			Type:     models.EmergencyExtendedInact,
			Severity: models.SeverityMedium,
			Message:  fmt.Sprintf("Extended inactivity: no movement for %.1f hours.", maxInactivity),
			Action:   "Schedule check-in to verify wellbeing.",
		}
	}

	return nil
}
