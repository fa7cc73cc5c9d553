package model

// Creator statuses. Stored as free-form strings; nothing enforces this set.
const (
	StatusActive     = "Active"
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusSuspended  = "Suspended"
)

// Creator is one managed channel in the network.
type Creator struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	ChannelName         string  `json:"channelName"`
	Subscribers         int64   `json:"subscribers"`
	TotalViews          int64   `json:"totalViews"`
	VideoCount          int64   `json:"videoCount"`
	Revenue             float64 `json:"revenue"`
	Niche               string  `json:"niche"`
	AvatarURL           string  `json:"avatarUrl"`
	Status              string  `json:"status"`
	Trend               string  `json:"trend"`
	LinkedChannelHandle string  `json:"linkedChannelHandle,omitempty"`
	LastSynced          string  `json:"lastSynced,omitempty"`
	MonetizationStatus  string  `json:"monetizationStatus,omitempty"`
	UploadPolicy        string  `json:"uploadPolicy,omitempty"`
}

// CreatorPatch carries the fields of a create or update request. Nil fields
// are left untouched. The id is never patchable.
type CreatorPatch struct {
	Name                *string  `json:"name,omitempty"`
	ChannelName         *string  `json:"channelName,omitempty"`
	Subscribers         *int64   `json:"subscribers,omitempty"`
	TotalViews          *int64   `json:"totalViews,omitempty"`
	VideoCount          *int64   `json:"videoCount,omitempty"`
	Revenue             *float64 `json:"revenue,omitempty"`
	Niche               *string  `json:"niche,omitempty"`
	AvatarURL           *string  `json:"avatarUrl,omitempty"`
	Status              *string  `json:"status,omitempty"`
	Trend               *string  `json:"trend,omitempty"`
	LinkedChannelHandle *string  `json:"linkedChannelHandle,omitempty"`
	LastSynced          *string  `json:"lastSynced,omitempty"`
	MonetizationStatus  *string  `json:"monetizationStatus,omitempty"`
	UploadPolicy        *string  `json:"uploadPolicy,omitempty"`
}

// Apply shallow-merges the set fields of p onto c.
func (p CreatorPatch) Apply(c *Creator) {
	setString(&c.Name, p.Name)
	setString(&c.ChannelName, p.ChannelName)
	setInt(&c.Subscribers, p.Subscribers)
	setInt(&c.TotalViews, p.TotalViews)
	setInt(&c.VideoCount, p.VideoCount)
	if p.Revenue != nil {
		c.Revenue = *p.Revenue
	}
	setString(&c.Niche, p.Niche)
	setString(&c.AvatarURL, p.AvatarURL)
	setString(&c.Status, p.Status)
	setString(&c.Trend, p.Trend)
	setString(&c.LinkedChannelHandle, p.LinkedChannelHandle)
	setString(&c.LastSynced, p.LastSynced)
	setString(&c.MonetizationStatus, p.MonetizationStatus)
	setString(&c.UploadPolicy, p.UploadPolicy)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int64, v *int64) {
	if v != nil {
		*dst = *v
	}
}

// SyncRequest is the body of POST /api/creators/:id/sync.
type SyncRequest struct {
	Handle string `json:"handle"`
}

// SuccessResponse is returned by update and delete.
type SuccessResponse struct {
	Success bool `json:"success"`
}
