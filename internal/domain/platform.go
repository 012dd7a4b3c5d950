package domain

// Platform identifies one of the supported social networks.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformReddit    Platform = "reddit"
	PlatformX         Platform = "x"
)

// Platforms returns the platforms in evaluation order. Tie-breaks across the
// codebase (best platform, opportunity insight) resolve to the earliest
// platform in this list, so the order is part of the contract.
func Platforms() []Platform {
	return []Platform{PlatformInstagram, PlatformReddit, PlatformX}
}

// DisplayName returns the user-facing platform name.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformInstagram:
		return "Instagram"
	case PlatformReddit:
		return "Reddit"
	case PlatformX:
		return "X (Twitter)"
	}
	return string(p)
}

// Emoji returns the emoji used by chart components for the platform.
func (p Platform) Emoji() string {
	switch p {
	case PlatformInstagram:
		return "📸"
	case PlatformReddit:
		return "🔴"
	case PlatformX:
		return "🐦"
	}
	return ""
}

// CanonicalMonths returns the fixed six-month analysis window. Every computed
// rate series carries exactly these labels in this order.
func CanonicalMonths() []string {
	return []string{"Ene 25", "Feb 25", "Mar 25", "Abr 25", "May 25", "Jun 25"}
}
