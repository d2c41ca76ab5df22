package models

// Platform identifies the social platform a creator publishes on.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformThreads   Platform = "threads"
)

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformYouTube, PlatformTikTok, PlatformFacebook, PlatformInstagram, PlatformThreads:
		return true
	}
	return false
}

// CheckInSource records how a check-in was submitted.
type CheckInSource string

const (
	SourceManual CheckInSource = "manual"
	SourceAPI    CheckInSource = "api"
)

// XPReason classifies an entry in the XP ledger.
type XPReason string

const (
	ReasonDailyCheckIn     XPReason = "daily_checkin"
	ReasonStreakMilestone  XPReason = "streak_milestone"
	ReasonRewardRedemption XPReason = "reward_redemption"
	ReasonManualGrant      XPReason = "manual_grant"
)

// RewardStatus controls catalog visibility.
type RewardStatus string

const (
	RewardActive   RewardStatus = "active"
	RewardUpcoming RewardStatus = "upcoming"
	RewardExpired  RewardStatus = "expired"
)

// FulfillmentType describes how a redeemed reward is delivered.
type FulfillmentType string

const (
	FulfillDigital  FulfillmentType = "digital"
	FulfillConsult  FulfillmentType = "consult"
	FulfillDiscount FulfillmentType = "discount"
	FulfillCourse   FulfillmentType = "course"
)
