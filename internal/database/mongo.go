// Package database dials the backing stores and verifies they answer before
// the service starts taking traffic.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const mongoConnectTimeout = 15 * time.Second

// ConnectMongo dials the cluster and pings it. It returns the named database
// for the repositories and the client so shutdown can disconnect it.
func ConnectMongo(uri, dbName string, logger *zap.SugaredLogger) (*mongo.Database, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	logger.Infof("connected to MongoDB database %q", dbName)
	return client.Database(dbName), client, nil
}
