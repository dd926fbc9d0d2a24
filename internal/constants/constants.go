package constants

// Session and context keys
const (
	SessionCookieName   = "qa_session"
	ContextKeyUserID    = "user_id"
	ContextKeyUser      = "current_user"
	ContextKeyRequestID = "request_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Validation limits
const (
	MinPasswordLength   = 8
	MaxUsernameLength   = 150
	MaxNameLength       = 150
	MaxEmailLength      = 254
	MaxTitleLength      = 200
	MaxTagLength        = 100
	MaxLocationLength   = 100
	MaxLinkLength       = 100
	MaxProfileLinks     = 10
	RecentActivityLimit = 5
)

// Avatars
const (
	AvatarDir           = "avatars"
	DefaultAvatar       = "avatars/default.png"
	AvatarSize          = 128
	MaxAvatarUploadSize = 5 << 20
)
