package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectAll is the wildcard project grant: a user holding it sees every
// report regardless of projectName.
const ProjectAll = "all"

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Projects  []string           `json:"projects" bson:"projects"`
	CreatedAt primitive.DateTime `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt primitive.DateTime `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// IsAdmin reports whether the account is the admin account.
func (u User) IsAdmin() bool {
	return u.Username == "admin"
}

// HasAllProjects reports whether the user holds the wildcard grant.
func (u User) HasAllProjects() bool {
	for _, p := range u.Projects {
		if p == ProjectAll {
			return true
		}
	}
	return false
}

// NormalizeProjects collapses the two accepted input shapes (projects array
// or legacy single project string) into one canonical set: trimmed,
// de-duplicated, never empty. With no input at all the user defaults to the
// wildcard grant.
func NormalizeProjects(projects []string, project string) []string {
	out := make([]string, 0, len(projects)+1)
	seen := make(map[string]bool)
	for _, p := range projects {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	if len(out) > 0 {
		return out
	}
	if p := strings.TrimSpace(project); p != "" {
		return []string{p}
	}
	return []string{ProjectAll}
}
