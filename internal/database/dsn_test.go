package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User:     "accounts",
		Password: "s3cret",
		Name:     "phoneauth",
		Host:     "db.internal",
		Port:     5433,
	})
	require.NoError(t, err)
	require.Equal(t, "host=db.internal port=5433 user=accounts dbname=phoneauth password=s3cret sslmode=disable", dsn)
}

func TestBuildPostgresDSNDefaultsAndOverrides(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User:    "accounts",
		Name:    "phoneauth",
		Options: map[string]string{"sslmode": "require"},
	})
	require.NoError(t, err)
	require.Equal(t, "host=localhost port=5432 user=accounts dbname=phoneauth sslmode=require", dsn)
}

func TestBuildPostgresDSNRequiresUserAndName(t *testing.T) {
	_, err := buildPostgresDSN(Config{User: "accounts"})
	require.Error(t, err)
}

func TestBuildPostgresDSNPassthrough(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{DSN: "postgres://u:p@h/db"})
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@h/db", dsn)
}

func TestBuildMySQLDSN(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{
		User:     "accounts",
		Password: "s3cret",
		Name:     "phoneauth",
		Host:     "db.internal",
		Port:     3307,
	})
	require.NoError(t, err)
	require.Equal(t, "accounts:s3cret@tcp(db.internal:3307)/phoneauth?charset=utf8mb4&loc=Local&parseTime=True", dsn)
}

func TestBuildMySQLDSNDefaults(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{User: "accounts", Name: "phoneauth"})
	require.NoError(t, err)
	require.Equal(t, "accounts@tcp(127.0.0.1:3306)/phoneauth?charset=utf8mb4&loc=Local&parseTime=True", dsn)
}

func TestBuildMySQLDSNRequiresUserAndName(t *testing.T) {
	_, err := buildMySQLDSN(Config{Name: "phoneauth"})
	require.Error(t, err)
}
