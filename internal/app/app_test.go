package app

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/electramart-api/internal/config"
	"github.com/iliyamo/electramart-api/internal/model"
)

func TestNewLoggerLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("loud").GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, NewLogger("").Formatter)
}

func TestOpenStoreMemory(t *testing.T) {
	log := NewLogger("error")
	st, ping, err := OpenStore(context.Background(), config.Config{StoreDriver: config.DriverMemory}, log)
	require.NoError(t, err)
	require.NoError(t, ping(context.Background()))

	ctx := context.Background()
	require.NoError(t, st.Products.Create(ctx, &model.Product{Productname: "Thermometer"}))
	items, err := st.Products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.NoError(t, st.Close(ctx))
}
