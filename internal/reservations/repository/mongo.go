package repository

import (
	"context"
	"fmt"

	"podquest/pkg/config"
	mongotx "podquest/pkg/db/mongo"
	"podquest/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Reservations"

// mongoLedgerStore is the alternative ledger backend for deployments that
// already run MongoDB. Appends go through a transaction so a failed write
// never leaves a partial reservation visible.
type mongoLedgerStore struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoLedgerStore(cfg *config.Config) LedgerStore {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLedgerStore{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (s *mongoLedgerStore) Load(ctx context.Context) ([]model.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []model.Reservation{}
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	s.cfg.Log.Info("Ledger loaded", "collection", CollectionName, "reservations", len(reservations))
	return reservations, nil
}

func (s *mongoLedgerStore) Append(ctx context.Context, reservation *model.Reservation) error {
	return s.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.collection.InsertOne(sessCtx, reservation); err != nil {
			return fmt.Errorf("failed to insert reservation: %w", err)
		}
		return nil
	})
}
