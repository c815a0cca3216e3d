package model

import "time"

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusCompleted RequestStatus = "completed"
	StatusRejected  RequestStatus = "rejected"
)

// ValidStatus reports whether s is one of the four request statuses.
func ValidStatus(s RequestStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

type WasteRequest struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	WasteType   string        `json:"wasteType"`
	Quantity    string        `json:"quantity"`
	Description *string       `json:"description,omitempty"`
	PickupDate  string        `json:"pickupDate"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// AdminRequestView is a WasteRequest joined with its owner, for the
// administrator listing.
type AdminRequestView struct {
	WasteRequest
	OwnerUsername string  `json:"username"`
	OwnerFullName string  `json:"full_name"`
	OwnerPhone    *string `json:"owner_phone,omitempty"`
	OwnerAddress  *string `json:"owner_address,omitempty"`
}
