package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the dashboard queries rely on. Safe to
// run on every boot; mongo treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"customers": {
			{Keys: bson.D{{Key: "phone", Value: 1}}},
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"drivers": {
			{Keys: bson.D{{Key: "phone", Value: 1}}},
			{Keys: bson.D{{Key: "vendor_id", Value: 1}}},
		},
		"vendors": {
			{Keys: bson.D{{Key: "phone", Value: 1}}},
		},
		"vehicles": {
			{Keys: bson.D{{Key: "registration_number", Value: 1}}},
			{Keys: bson.D{{Key: "vendor_id", Value: 1}}},
		},
		// One effective tariff row per (service, vehicle, creator). The
		// resolver still tolerates historic duplicates by taking the newest.
		"tariffs": {
			{
				Keys:    bson.D{{Key: "service_id", Value: 1}, {Key: "vehicle_id", Value: 1}, {Key: "created_by", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		"package_tariffs": {
			{Keys: bson.D{{Key: "service_id", Value: 1}, {Key: "vehicle_id", Value: 1}, {Key: "created_by", Value: 1}, {Key: "type", Value: 1}}},
		},
		"bookings": {
			{Keys: bson.D{{Key: "booking_number", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "pickup_datetime", Value: -1}}},
			{Keys: bson.D{{Key: "customer_id", Value: 1}}},
			{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"invoices": {
			{Keys: bson.D{{Key: "invoice_number", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "booking_id", Value: 1}}},
		},
		"enquiries": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"ip_traces": {
			{Keys: bson.D{{Key: "ip", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "created_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(90 * 24 * 3600)},
		},
		"notifications": {
			{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if len(models) == 0 {
			continue
		}
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}

	return nil
}
