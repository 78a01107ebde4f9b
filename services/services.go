package services

import (
	"context"
	"sort"
	"time"

	"bughub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScopeFilter builds the visibility filter for a caller. Admin and
// wildcard-grant users see everything; everyone else only sees reports
// whose projectName is in their project set. Scoping happens in the query
// itself so out-of-scope reports never leave the database.
func ScopeFilter(user models.User) bson.M {
	if user.IsAdmin() || user.HasAllProjects() {
		return bson.M{}
	}
	return bson.M{"projectName": bson.M{"$in": user.Projects}}
}

// ListReports returns the reports visible to the caller, newest first.
func ListReports(ctx context.Context, coll *mongo.Collection, user models.User) ([]models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := coll.Find(ctx, ScopeFilter(user), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// DistinctProjectNames returns the raw distinct projectName values in the
// reports collection.
func DistinctProjectNames(ctx context.Context, coll *mongo.Collection) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := coll.Distinct(ctx, "projectName", bson.M{"projectName": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			names = append(names, s)
		}
	}
	return names, nil
}

// ProjectNameList shapes distinct project names for the API: "all" first,
// then the unique non-empty names sorted ascending.
func ProjectNameList(names []string) []string {
	seen := make(map[string]bool)
	unique := []string{}
	for _, n := range names {
		if n == "" || n == models.ProjectAll || seen[n] {
			continue
		}
		seen[n] = true
		unique = append(unique, n)
	}
	sort.Strings(unique)
	return append([]string{models.ProjectAll}, unique...)
}
