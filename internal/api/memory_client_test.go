package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_SpinAppendsRecord(t *testing.T) {
	c := NewMemoryClient("DEMO", []Store{{ID: "105", Name: "Plaza Norte"}})
	c.SetWheel([]string{"Polo"})
	c.SetClock(func() time.Time { return time.Date(2026, 1, 15, 18, 30, 0, 0, time.UTC) })

	outcome, err := c.RegisterSpin(context.Background(), SpinRequest{
		StoreID: "105", Campaign: "DEMO", Name: "Juan", DNI: "12345678", PhoneNumber: "987654321",
	})
	require.NoError(t, err)
	assert.True(t, outcome.Won())
	assert.NotEmpty(t, outcome.RegisterID)

	records, err := c.ListRegistrations(context.Background(), "105", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Plaza Norte", records[0].StoreName)
	assert.Equal(t, "Polo", records[0].PrizeName)
}

func TestMemoryClient_WheelExhaustedLoses(t *testing.T) {
	c := NewMemoryClient("DEMO", []Store{{ID: "105", Name: "Plaza Norte"}})

	outcome, err := c.RegisterSpin(context.Background(), SpinRequest{
		StoreID: "105", Name: "Juan", DNI: "1", PhoneNumber: "9",
	})
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.False(t, outcome.Won())
}

func TestMemoryClient_UnknownStore(t *testing.T) {
	c := NewMemoryClient("DEMO", nil)

	_, err := c.GetStore(context.Background(), "999")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)

	_, err = c.RegisterSpin(context.Background(), SpinRequest{StoreID: "999", Name: "a", DNI: "b", PhoneNumber: "c"})
	require.ErrorAs(t, err, &apiErr)
}

func TestMemoryClient_FilterByStore(t *testing.T) {
	c := NewDemoClient("DEMO")
	for _, id := range []string{"105", "212", "105"} {
		_, err := c.RegisterSpin(context.Background(), SpinRequest{StoreID: id, Name: "a", DNI: "b", PhoneNumber: "c"})
		require.NoError(t, err)
	}

	records, err := c.ListRegistrations(context.Background(), "105", 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	all, err := c.ListRegistrations(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
