package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProjectID     string             `json:"projectId" bson:"projectId"`
	TaskName      string             `json:"title" bson:"taskName"`
	Department    int                `json:"department,omitempty" bson:"department,omitempty"`
	AssignedUsers []string           `json:"assignedUsers" bson:"assignedUsers"`
	AssignedBy    string             `json:"assignedBy" bson:"assignedBy"`
	DueDate       time.Time          `json:"dueDate" bson:"dueDate"`
	CompletedDate *time.Time         `json:"completedDate,omitempty" bson:"completedDate,omitempty"`
	Description   string             `json:"description" bson:"description"`
	Status        StatusEnum         `json:"status" bson:"status"`
	Audit         `bson:",inline"`
}
