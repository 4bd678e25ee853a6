package azure

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resourcegraph/armresourcegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGraph struct {
	data  interface{}
	err   error
	query armresourcegraph.QueryRequest
}

func (f *fakeGraph) Resources(ctx context.Context, query armresourcegraph.QueryRequest, _ *armresourcegraph.ClientResourcesOptions) (armresourcegraph.ClientResourcesResponse, error) {
	f.query = query
	if f.err != nil {
		return armresourcegraph.ClientResourcesResponse{}, f.err
	}
	var resp armresourcegraph.ClientResourcesResponse
	resp.Data = f.data
	return resp, nil
}

func TestGetFindings(t *testing.T) {
	graph := &fakeGraph{data: []interface{}{
		map[string]interface{}{
			"id":             "/subscriptions/sub-1/providers/Microsoft.Security/assessments/a1",
			"subscriptionId": "sub-1",
			"severity":       "High",
			"title":          "Storage accounts should restrict network access",
			"resourceId":     "/subscriptions/sub-1/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/logs",
			"control":        "a1",
		},
		"not-a-row",
	}}
	p := &DefenderProvider{client: graph, subscriptionID: "sub-1"}

	findings, err := p.GetFindings(context.Background())

	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "azure", findings[0].CSP)
	assert.Equal(t, "HIGH", findings[0].Severity)
	assert.Equal(t, "sub-1", findings[0].AccountID)
	assert.NotEmpty(t, findings[0].FindingIDShort)
	require.Len(t, graph.query.Subscriptions, 1)
	assert.Equal(t, "sub-1", *graph.query.Subscriptions[0])
}

func TestGetFindings_UnexpectedFormat(t *testing.T) {
	p := &DefenderProvider{client: &fakeGraph{data: "oops"}, subscriptionID: "sub-1"}

	_, err := p.GetFindings(context.Background())

	assert.Error(t, err)
}

func TestGetFindings_QueryError(t *testing.T) {
	p := &DefenderProvider{client: &fakeGraph{err: errors.New("forbidden")}, subscriptionID: "sub-1"}

	_, err := p.GetFindings(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
}

func TestGetString(t *testing.T) {
	row := map[string]interface{}{
		"name":  "value",
		"count": 3,
	}

	assert.Equal(t, "value", getString(row, "name"))
	assert.Equal(t, "3", getString(row, "count"))
	assert.Equal(t, "", getString(row, "missing"))
}
