package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/go-petr/pet-bank-datagen/internal/datasetrepo"
	"github.com/go-petr/pet-bank-datagen/internal/datasetservice"
	"github.com/go-petr/pet-bank-datagen/internal/jsonrepo"
	"github.com/go-petr/pet-bank-datagen/internal/mongorepo"
	"github.com/go-petr/pet-bank-datagen/pkg/configpkg"
	"github.com/go-petr/pet-bank-datagen/pkg/dbpkg"
)

// resources opens the storage connections the configured source and sink need.
type resources struct {
	config configpkg.Config
	db     *sql.DB
	mongo  *mongo.Client
}

func newResources(config configpkg.Config) *resources {
	return &resources{config: config}
}

func (r *resources) postgres(ctx context.Context) (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := dbpkg.Setup(r.config.DBDriver, r.config.DBSource)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("driver", r.config.DBDriver).Msg("connected to database")

	r.db = db

	return db, nil
}

func (r *resources) files() jsonrepo.Files {
	return jsonrepo.Files{
		ClientsIn:  r.config.ClientsInFile,
		AccountsIn: r.config.AccountsInFile,
		OutputDir:  r.config.OutputDir,
	}
}

func (r *resources) source(ctx context.Context) (datasetservice.Source, error) {
	switch r.config.Source {
	case configpkg.StorageJSON:
		return jsonrepo.New(r.files()), nil
	case configpkg.StoragePostgres:
		db, err := r.postgres(ctx)
		if err != nil {
			return nil, err
		}

		return datasetrepo.NewRepoPGS(db), nil
	}

	return nil, fmt.Errorf("unsupported source %q", r.config.Source)
}

func (r *resources) sink(ctx context.Context) (datasetservice.Sink, error) {
	switch r.config.Sink {
	case configpkg.StorageJSON:
		return jsonrepo.New(r.files()), nil
	case configpkg.StoragePostgres:
		db, err := r.postgres(ctx)
		if err != nil {
			return nil, err
		}

		return datasetrepo.NewRepoPGS(db), nil
	case configpkg.StorageMongo:
		client, err := mongorepo.Connect(ctx, r.config.MongoURI)
		if err != nil {
			return nil, err
		}

		r.mongo = client

		return mongorepo.New(mongorepo.NewProvider(client, r.config.MongoDatabase)), nil
	}

	return nil, fmt.Errorf("unsupported sink %q", r.config.Sink)
}

func (r *resources) close(ctx context.Context) {
	l := zerolog.Ctx(ctx)

	if r.db != nil {
		if err := r.db.Close(); err != nil {
			l.Error().Err(err).Msg("cannot close database")
		}
	}

	if r.mongo != nil {
		if err := r.mongo.Disconnect(ctx); err != nil {
			l.Error().Err(err).Msg("cannot disconnect from MongoDB")
		}
	}
}
