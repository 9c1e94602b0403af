package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wholesale/pkg/validation"
)

func TestCreateAssignsNextIDAndDefaults(t *testing.T) {
	existing := []Customer{{ID: 101, Name: "7-Eleven 连锁便利"}, {ID: 102, Name: "沃尔玛超市"}}

	customers, created, err := Create(existing, Customer{Name: " 全家便利店 ", Address: "锦江区春熙路"})
	require.NoError(t, err)
	assert.Equal(t, int64(103), created.ID)
	assert.Equal(t, "全家便利店", created.Name)
	assert.Equal(t, TypeChain, created.Type)
	assert.Equal(t, BillingNet30, created.Billing)
	assert.Equal(t, ModeDesktop, created.Mode)
	assert.Len(t, customers, 3)
}

func TestCreateStartsAtFirstID(t *testing.T) {
	_, created, err := Create(nil, Customer{Name: "A", Address: "B"})
	require.NoError(t, err)
	assert.Equal(t, FirstID, created.ID)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	existing := []Customer{{ID: 101}}
	customers, _, err := Create(existing, Customer{Name: "  ", Billing: "月结90天"})
	require.Error(t, err)
	assert.Len(t, customers, 1)

	fields := validation.Fields(err)
	require.Len(t, fields, 3)
	assert.Equal(t, "name", fields[0].Field)
	assert.Equal(t, "address", fields[1].Field)
	assert.Equal(t, "billing", fields[2].Field)
}

func TestFind(t *testing.T) {
	c, ok := Find([]Customer{{ID: 101, Name: "x"}}, 101)
	assert.True(t, ok)
	assert.Equal(t, "x", c.Name)
	_, ok = Find(nil, 101)
	assert.False(t, ok)
}
