package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskAcceptance records that a user agreed to take on a task. At most one
// record per (taskId, userId) pair is authoritative.
type TaskAcceptance struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TaskID       string             `json:"taskId" bson:"taskId"`
	UserID       string             `json:"userId" bson:"userId"`
	AcceptedDate time.Time          `json:"acceptedDate" bson:"acceptedDate"`
}
