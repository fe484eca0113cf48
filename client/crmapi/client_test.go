package crmapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vantage-CRM/vantage-crm-backend/client/listview"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
)

func TestListLeadsNormalizesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/crm/leads", r.URL.Path)
		assert.Equal(t, "QUALIFIED", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Empty(t, r.Header.Get("X-Actor-Email"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"message": "Leads fetched successfully",
			"data": [{"id": "l1"}, {"id": "l2"}],
			"meta": {"page": 2, "limit": 10, "total": 12, "total_pages": 2}
		}`))
	}))
	defer server.Close()

	client := New(server.URL, "admin@vantage-crm.io")
	q := listview.NewListQuery(10)
	q.SetFilter("status", "QUALIFIED")
	q.SetPage(2)

	result, err := client.ListLeads(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 2, result.Pagination.TotalPages)
}

func TestListErrorReturnsEmptyResultAndAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "Failed to fetch leads", "error": true}`))
	}))
	defer server.Close()

	client := New(server.URL, "")
	result, err := client.ListLeads(context.Background(), listview.NewListQuery(10))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Failed to fetch leads", apiErr.Message)

	// Even the error path hands back something safe to render.
	require.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.Pagination.TotalPages)
}

func TestGetLeadUnwrapsData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/crm/leads/l1", r.URL.Path)
		w.Write([]byte(`{"message": "ok", "data": {"id": "l1", "name": "Ada Lovelace", "status": "QUALIFIED"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "")
	lead, err := client.GetLead(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", lead.Name)
	assert.Equal(t, "QUALIFIED", lead.Status)
}

func TestMutationsCarryActorHeader(t *testing.T) {
	var gotActor, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor = r.Header.Get("X-Actor-Email")
		gotMethod = r.Method
		w.Write([]byte(`{"message": "ok", "data": {"id": "o1", "stage": "WON"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "admin@vantage-crm.io")
	opp, err := client.UpdateOpportunityStage(context.Background(), "o1", models.UpdateOpportunityStageRequest{Stage: "WON"})
	require.NoError(t, err)

	assert.Equal(t, "admin@vantage-crm.io", gotActor)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "WON", opp.Stage)
}

func TestDeleteMapsErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Opportunity not found", "error": true}`))
	}))
	defer server.Close()

	client := New(server.URL, "admin@vantage-crm.io")
	err := client.DeleteOpportunity(context.Background(), "missing")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Opportunity not found", apiErr.Message)
}

func TestBulkDeleteOpportunitiesPartialFailure(t *testing.T) {
	var mu sync.Mutex
	deleted := map[string]bool{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		id := r.URL.Path[len("/api/v1/crm/opportunities/"):]
		if id == "o2" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message": "Failed to delete opportunity", "error": true}`))
			return
		}
		mu.Lock()
		deleted[id] = true
		mu.Unlock()
		w.Write([]byte(`{"message": "Opportunity deleted successfully"}`))
	}))
	defer server.Close()

	client := New(server.URL, "admin@vantage-crm.io")
	outcome := client.BulkDeleteOpportunities(context.Background(), []string{"o1", "o2", "o3"})

	assert.Equal(t, 2, outcome.Succeeded)
	assert.Equal(t, 1, outcome.Failed)
	assert.Equal(t, "Successfully deleted 2 opportunity(ies)", outcome.SuccessMessage("deleted", "opportunity"))
	assert.Equal(t, "Failed to delete 1 opportunity(ies)", outcome.FailureMessage("delete", "opportunity"))

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, deleted["o1"])
	assert.True(t, deleted["o3"])
}

func TestGetLeadInterestsMergesSources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/crm/leads/l1":
			w.Write([]byte(`{"message": "ok", "data": {"id": "l1", "name": "Ada", "status": "NEW",
				"product_interests": "[{\"product_id\": \"p1\", \"product_name\": \"Desk Lamp\", \"quantity\": 2, \"interest_level\": \"medium\"}]"}}`))
		case "/api/v1/crm/leads/l1/products":
			w.Write([]byte(`{"message": "ok", "data": [
				{"product_id": "p1", "quantity": 5, "interest_level": "high"},
				{"product_id": "p2", "product_name": "Office Chair", "quantity": 1, "interest_level": "low"}
			]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := New(server.URL, "")
	merged, err := client.GetLeadInterests(context.Background(), "l1")
	require.NoError(t, err)

	require.Len(t, merged, 2)
	assert.Equal(t, listview.SourceBoth, merged[0].Source)
	assert.Equal(t, 5, merged[0].Quantity)
	assert.Equal(t, "Desk Lamp", merged[0].ProductName)
	assert.Equal(t, listview.SourceAddedLater, merged[1].Source)
}

func TestControllerAgainstLiveServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"message": "Opportunities fetched successfully",
			"data": [{"id": "o1", "stage": "PROPOSAL", "value": 1500, "probability": 40}],
			"meta": {"page": 1, "limit": 10, "total": 1, "total_pages": 1}
		}`))
	}))
	defer server.Close()

	client := New(server.URL, "")
	results := make(chan listview.ListResult, 1)

	ctrl := listview.NewController(listview.ControllerConfig{
		Fetcher:  client.OpportunityFetcher(),
		OnResult: func(r listview.ListResult) { results <- r },
	})
	defer ctrl.Close()

	ctrl.Start()
	result := <-results

	require.Len(t, result.Items, 1)
	assert.Equal(t, 1, result.Pagination.Total)
}
