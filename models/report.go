package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Severity levels.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Triage statuses. Transitions are unconstrained: status is a label, not an
// enforced workflow.
const (
	StatusOpen       = "open"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

type Report struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	ProjectName string             `json:"projectName,omitempty" bson:"projectName,omitempty"`
	Description string             `json:"description" bson:"description"`
	Name        string             `json:"name,omitempty" bson:"name,omitempty"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	VideoURL    string             `json:"videoUrl,omitempty" bson:"videoUrl,omitempty"`
	Severity    string             `json:"severity" bson:"severity"`
	Status      string             `json:"status" bson:"status"`
	Metadata    Metadata           `json:"metadata" bson:"metadata"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Metadata is captured by the submission widget on the reporting page.
type Metadata struct {
	URL      string `json:"url" bson:"url"`
	Browser  string `json:"browser" bson:"browser"`
	OS       string `json:"os" bson:"os"`
	Viewport string `json:"viewport" bson:"viewport"`
	IP       string `json:"ip" bson:"ip"`
	Location string `json:"location" bson:"location"`
}

// ValidSeverity reports whether s is one of the accepted severity levels.
func ValidSeverity(s string) bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// ValidStatus reports whether s is one of the accepted statuses.
func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusResolved
}
