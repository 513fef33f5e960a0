package models

// Percent returns part/whole*100 rounded half-up, or 0 when whole is 0.
// Skill match and quiz score both report through it.
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	if part >= whole {
		return 100
	}
	return (part*200 + whole) / (2 * whole)
}
