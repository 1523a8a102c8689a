package database

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"

	"mini-instagram/internal/utils"
)

// ConnectMongo opens a client and pings the primary before returning.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	utils.Logger.Info("connected to MongoDB", zap.String("uri_host", hostOf(uri)))
	return client, nil
}

// hostOf strips credentials from a connection string before it is logged.
func hostOf(uri string) string {
	if i := strings.LastIndex(uri, "@"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
