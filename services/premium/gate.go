// Package premium implements the two-state premium gate. A session starts Locked and the
// only transition is Upgrade to Unlocked; nothing moves it back.
package premium

import "servicehub/models"

// UpgradeConfirmation is shown after the simulated upgrade.
const UpgradeConfirmation = "Premium upgrade successful! (Demo)"

// Upgrade unlocks the gate and closes the dialog. It reports whether the state changed.
func Upgrade(s *models.SessionState) bool {
	s.PremiumGateOpen = false
	if s.IsPremium() {
		return false
	}
	s.Premium = models.PremiumUnlocked
	return true
}

// Require reports whether a premium-only action may run. While Locked it opens the
// gate dialog instead.
func Require(s *models.SessionState) bool {
	if s.IsPremium() {
		return true
	}
	s.PremiumGateOpen = true
	return false
}

// OpenGate opens the upgrade dialog. Unlocked sessions have nothing to upgrade.
func OpenGate(s *models.SessionState) bool {
	if s.IsPremium() {
		return false
	}
	s.PremiumGateOpen = true
	return true
}

func CloseGate(s *models.SessionState) {
	s.PremiumGateOpen = false
}
