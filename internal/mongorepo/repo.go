// Package mongorepo stores the dataset in MongoDB collections.
package mongorepo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/pkg/errorspkg"
	"github.com/go-petr/pet-bank-datagen/pkg/passpkg"
)

// Collection names.
const (
	ClientsCollection      = "clients"
	AccountsCollection     = "accounts"
	TransactionsCollection = "transactions"
	SyncCollection         = "dataSync"
)

type clientDocument struct {
	Username       string          `bson:"_id"`
	HashedPassword string          `bson:"hashedPassword"`
	FirstName      string          `bson:"firstName"`
	LastName       string          `bson:"lastName"`
	Address        addressDocument `bson:"address"`
}

type addressDocument struct {
	StreetNumber string `bson:"streetNumber"`
	StreetName   string `bson:"streetName"`
	City         string `bson:"city"`
	State        string `bson:"state"`
	Country      string `bson:"country"`
}

type accountDocument struct {
	Number   int64                `bson:"_id"`
	ClientID string               `bson:"clientId"`
	Type     string               `bson:"accountType"`
	Balance  primitive.Decimal128 `bson:"balance"`
}

type transactionDocument struct {
	ID          int64                `bson:"_id"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Type        string               `bson:"transactionType"`
	Date        time.Time            `bson:"date"`
	SenderID    *int64               `bson:"senderId"`
	RecipientID *int64               `bson:"recipientId"`
}

// SyncLog records a completed write of one collection.
type SyncLog struct {
	CollectionName string    `bson:"collectionName"`
	SyncTimestamp  time.Time `bson:"syncTimestamp"`
	Records        int64     `bson:"records"`
}

// Repo writes dataset collections through a CollectionProvider.
type Repo struct {
	provider CollectionProvider
	now      func() time.Time
}

// New returns Mongo repo writing to the collections of provider.
func New(provider CollectionProvider) *Repo {
	return &Repo{
		provider: provider,
		now:      time.Now,
	}
}

// SaveClients upserts the clients keyed by username with hashed passwords and
// removes the clients missing from the slice.
func (r *Repo) SaveClients(ctx context.Context, clients []domain.Client) error {
	l := zerolog.Ctx(ctx)

	models := make([]mongo.WriteModel, 0, len(clients)+1)
	usernames := make([]string, 0, len(clients))

	for _, c := range clients {
		hashed, err := passpkg.Hash(c.Password)
		if err != nil {
			l.Error().Err(err).Str("username", c.Username).Send()
			return errorspkg.ErrInternal
		}

		doc := clientDocument{
			Username:       c.Username,
			HashedPassword: hashed,
			FirstName:      c.FirstName,
			LastName:       c.LastName,
			Address:        addressDocument(c.Address),
		}

		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.Username}).
			SetReplacement(doc).
			SetUpsert(true))
		usernames = append(usernames, doc.Username)
	}

	models = append(models, mongo.NewDeleteManyModel().
		SetFilter(bson.M{"_id": bson.M{"$nin": usernames}}))

	return r.bulkWrite(ctx, ClientsCollection, models, len(clients))
}

// SaveAccounts upserts the accounts keyed by account number and removes the
// accounts missing from the slice.
func (r *Repo) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	models := make([]mongo.WriteModel, 0, len(accounts)+1)
	numbers := make([]int64, 0, len(accounts))

	for _, a := range accounts {
		balance, err := primitive.ParseDecimal128(a.Balance.StringFixed(2))
		if err != nil {
			return fmt.Errorf("account %d balance %s: %w", a.Number, a.Balance, err)
		}

		doc := accountDocument{
			Number:   a.Number,
			ClientID: a.ClientID,
			Type:     string(a.Type),
			Balance:  balance,
		}

		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.Number}).
			SetReplacement(doc).
			SetUpsert(true))
		numbers = append(numbers, doc.Number)
	}

	models = append(models, mongo.NewDeleteManyModel().
		SetFilter(bson.M{"_id": bson.M{"$nin": numbers}}))

	return r.bulkWrite(ctx, AccountsCollection, models, len(accounts))
}

// SaveTransactions upserts the transactions keyed by transaction id and removes
// the transactions of an earlier, longer ledger.
//
// Transaction ids run from 1 to len(transactions).
func (r *Repo) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	models := make([]mongo.WriteModel, 0, len(transactions)+1)

	for _, t := range transactions {
		amount, err := primitive.ParseDecimal128(t.Amount.StringFixed(2))
		if err != nil {
			return fmt.Errorf("transaction %d amount %s: %w", t.ID, t.Amount, err)
		}

		doc := transactionDocument{
			ID:          t.ID,
			Amount:      amount,
			Type:        string(t.Kind),
			Date:        t.Date.Time,
			SenderID:    t.SourceID,
			RecipientID: t.DestinationID,
		}

		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	models = append(models, mongo.NewDeleteManyModel().
		SetFilter(bson.M{"_id": bson.M{"$gt": int64(len(transactions))}}))

	return r.bulkWrite(ctx, TransactionsCollection, models, len(transactions))
}

// bulkWrite writes models in order and then logs the sync of records documents.
func (r *Repo) bulkWrite(ctx context.Context, name string, models []mongo.WriteModel, records int) error {
	l := zerolog.Ctx(ctx)

	res, err := r.provider.Collection(name).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		l.Error().Err(err).Str("collection", name).Send()
		return fmt.Errorf("failed to perform bulk write for collection %s: %w", name, err)
	}

	l.Info().Str("collection", name).
		Int64("upserted", res.UpsertedCount).
		Int64("modified", res.ModifiedCount).
		Int64("deleted", res.DeletedCount).
		Msg("collection written")

	syncLog := SyncLog{
		CollectionName: name,
		SyncTimestamp:  r.now(),
		Records:        int64(records),
	}

	if _, err := r.provider.Collection(SyncCollection).InsertOne(ctx, syncLog); err != nil {
		l.Error().Err(err).Send()
		return fmt.Errorf("failed to insert into %s collection: %w", SyncCollection, err)
	}

	return nil
}
