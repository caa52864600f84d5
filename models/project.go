package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProjectName   string             `json:"projectName" bson:"projectName"`
	Department    int                `json:"department" bson:"department"`
	ConcernID     int                `json:"concernId" bson:"concernId"`
	AssignedUsers []string           `json:"assignedUsers" bson:"assignedUsers"`
	AssignedBy    string             `json:"assignedBy" bson:"assignedBy"`
	Client        string             `json:"client,omitempty" bson:"client,omitempty"`
	StartDate     time.Time          `json:"startDate" bson:"startDate"`
	EndDate       *time.Time         `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Description   string             `json:"description" bson:"description"`
	Status        StatusEnum         `json:"status" bson:"status"`
	Audit         `bson:",inline"`
}

// Audit carries the write-tracking fields stamped on every persisted record.
type Audit struct {
	CreatedBy   string     `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	UpdatedBy   string     `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	CreatedTime time.Time  `json:"createdTime" bson:"createdTime"`
	UpdatedTime *time.Time `json:"updatedTime,omitempty" bson:"updatedTime,omitempty"`
	IsDeleted   bool       `json:"isDeleted" bson:"isDeleted"`
	IsDisabled  bool       `json:"isDisabled" bson:"isDisabled"`
}

// Stamp sets the creation audit fields.
func (a *Audit) Stamp(userID string, now time.Time) {
	a.CreatedBy = userID
	a.UpdatedBy = userID
	a.CreatedTime = now
	a.UpdatedTime = &now
	a.IsDeleted = false
	a.IsDisabled = false
}
