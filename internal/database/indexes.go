// Package database - compound indexes backing the escalation sweep and the
// authority directory lookups.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IncharaS06/vital/internal/global"
)

// CreateIndexes creates the compound indexes the services query against.
// Call once on startup, after the collections are registered.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	// issues: (status, resolveDueAt) — sweep query scans open issues past deadline
	issues := db.Collection(global.MongoDB_ColNames.Issues)
	if _, err := issues.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "resolveDueAt", Value: 1},
		},
		Options: options.Index().SetName("issue_status_due"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// issues: reporterId — villager's own issue listing
	if _, err := issues.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "reporterId", Value: 1}},
		Options: options.Index().SetName("issue_reporter"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// authorities: (role, jurisdiction.*) — directory lookup per escalation target
	authorities := db.Collection(global.MongoDB_ColNames.Authorities)
	if _, err := authorities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "role", Value: 1},
			{Key: "jurisdiction.panchayatId", Value: 1},
		},
		Options: options.Index().SetName("authority_role_panchayat").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := authorities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "role", Value: 1},
			{Key: "jurisdiction.district", Value: 1},
			{Key: "jurisdiction.taluk", Value: 1},
		},
		Options: options.Index().SetName("authority_role_district_taluk").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// mail_queue: (status, createdAt) — outbox drain in FIFO order
	mailQueue := db.Collection(global.MongoDB_ColNames.MailQueue)
	if _, err := mailQueue.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("mail_queue_status_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
