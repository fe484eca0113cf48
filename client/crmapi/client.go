// Package crmapi is the typed HTTP client for the admin API. It speaks the
// standard envelope, feeds list responses through listview's normalizer,
// and stamps mutations with the acting admin's email so the server's
// activity log can attribute them.
package crmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Vantage-CRM/vantage-crm-backend/client/listview"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
)

const actorHeader = "X-Actor-Email"

// Client talks to one admin API deployment.
type Client struct {
	baseURL    string
	actorEmail string
	httpc      *http.Client
}

// New builds a client. actorEmail is attached to every mutating request;
// list and detail reads go out without it.
func New(baseURL, actorEmail string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		actorEmail: actorEmail,
		httpc:      &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response mapped onto the envelope's error field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// do issues a request and decodes the body into out (skipped when out is
// nil). Non-2xx responses become *APIError carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && c.actorEmail != "" {
		req.Header.Set(actorHeader, c.actorEmail)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage digs the human-readable message out of an error body. The
// envelope carries it under "message" with a boolean "error" flag; a plain
// {"error": "..."} shape is tolerated for anything off the envelope.
func errorMessage(raw []byte) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		var s string
		if json.Unmarshal(body.Error, &s) == nil && s != "" {
			return s
		}
	}
	return "request failed"
}

// list issues a GET for one page and normalizes the body no matter what
// shape came back.
func (c *Client) list(ctx context.Context, path string, q listview.ListQuery) (listview.ListResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Values().Encode(), nil)
	if err != nil {
		return listview.EmptyResult(q), fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return listview.EmptyResult(q), fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return listview.EmptyResult(q), fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return listview.EmptyResult(q), &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	return listview.NormalizeList(raw, "data", q), nil
}

// detail unwraps the envelope's data field into out.
func (c *Client) detail(ctx context.Context, path string, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return err
	}
	if len(envelope.Data) == 0 {
		return fmt.Errorf("decode response: missing data field")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Leads

func (c *Client) ListLeads(ctx context.Context, q listview.ListQuery) (listview.ListResult, error) {
	return c.list(ctx, "/api/v1/crm/leads", q)
}

// LeadFetcher adapts the lead list endpoint to a listview controller.
func (c *Client) LeadFetcher() listview.Fetcher {
	return listview.FetcherFunc(c.ListLeads)
}

func (c *Client) GetLead(ctx context.Context, id string) (models.Lead, error) {
	var lead models.Lead
	err := c.detail(ctx, "/api/v1/crm/leads/"+id, &lead)
	return lead, err
}

func (c *Client) CreateLead(ctx context.Context, req models.CreateLeadRequest) (models.Lead, error) {
	var envelope struct {
		Data models.Lead `json:"data"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/crm/leads", req, &envelope)
	return envelope.Data, err
}

func (c *Client) UpdateLead(ctx context.Context, id string, req models.UpdateLeadRequest) (models.Lead, error) {
	var envelope struct {
		Data models.Lead `json:"data"`
	}
	err := c.do(ctx, http.MethodPut, "/api/v1/crm/leads/"+id, req, &envelope)
	return envelope.Data, err
}

func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/crm/leads/"+id, nil, nil)
}

func (c *Client) GetLeadStats(ctx context.Context) (models.LeadStats, error) {
	var stats models.LeadStats
	err := c.detail(ctx, "/api/v1/crm/leads/stats", &stats)
	return stats, err
}

// GetLeadInterests returns the lead's merged product-interest rows: the
// interests embedded at creation combined with ones added afterwards.
func (c *Client) GetLeadInterests(ctx context.Context, id string) ([]listview.MergedInterest, error) {
	lead, err := c.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}

	var added []models.LeadProductInterest
	if err := c.detail(ctx, "/api/v1/crm/leads/"+id+"/products", &added); err != nil {
		return nil, err
	}

	embedded := listview.ParseEmbeddedInterests(lead.ProductInterests)
	return listview.MergeInterests(embedded, added), nil
}

func (c *Client) GetLeadActivities(ctx context.Context, id string) ([]models.LeadActivity, error) {
	var activities []models.LeadActivity
	err := c.detail(ctx, "/api/v1/crm/leads/"+id+"/activities", &activities)
	return activities, err
}

// Opportunities

func (c *Client) ListOpportunities(ctx context.Context, q listview.ListQuery) (listview.ListResult, error) {
	return c.list(ctx, "/api/v1/crm/opportunities", q)
}

func (c *Client) OpportunityFetcher() listview.Fetcher {
	return listview.FetcherFunc(c.ListOpportunities)
}

func (c *Client) GetOpportunity(ctx context.Context, id string) (models.Opportunity, error) {
	var opp models.Opportunity
	err := c.detail(ctx, "/api/v1/crm/opportunities/"+id, &opp)
	return opp, err
}

func (c *Client) UpdateOpportunityStage(ctx context.Context, id string, req models.UpdateOpportunityStageRequest) (models.Opportunity, error) {
	var envelope struct {
		Data models.Opportunity `json:"data"`
	}
	err := c.do(ctx, http.MethodPatch, "/api/v1/crm/opportunities/"+id+"/stage", req, &envelope)
	return envelope.Data, err
}

func (c *Client) DeleteOpportunity(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/crm/opportunities/"+id, nil, nil)
}

// BulkDeleteOpportunities deletes each selected id as its own request and
// tallies the outcome; partial failure is reported, not fatal.
func (c *Client) BulkDeleteOpportunities(ctx context.Context, ids []string) listview.BulkOutcome {
	return listview.RunBulk(ctx, ids, c.DeleteOpportunity)
}

func (c *Client) GetOpportunityStats(ctx context.Context) (models.OpportunityStats, error) {
	var stats models.OpportunityStats
	err := c.detail(ctx, "/api/v1/crm/opportunities/stats", &stats)
	return stats, err
}

// Orders

func (c *Client) ListOrders(ctx context.Context, q listview.ListQuery) (listview.ListResult, error) {
	return c.list(ctx, "/api/v1/crm/orders", q)
}

func (c *Client) OrderFetcher() listview.Fetcher {
	return listview.FetcherFunc(c.ListOrders)
}

func (c *Client) GetOrder(ctx context.Context, id string) (models.OrderWithItems, error) {
	var order models.OrderWithItems
	err := c.detail(ctx, "/api/v1/crm/orders/"+id, &order)
	return order, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, req models.UpdateOrderStatusRequest) (models.Order, error) {
	var envelope struct {
		Data models.Order `json:"data"`
	}
	err := c.do(ctx, http.MethodPatch, "/api/v1/crm/orders/"+id+"/status", req, &envelope)
	return envelope.Data, err
}

func (c *Client) GetOrderStats(ctx context.Context) (models.OrderStats, error) {
	var stats models.OrderStats
	err := c.detail(ctx, "/api/v1/crm/orders/stats", &stats)
	return stats, err
}

// SendOrderInvoice asks the server to generate the PDF invoice and email it
// to the order's customer.
func (c *Client) SendOrderInvoice(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/crm/orders/"+id+"/invoice", nil, nil)
}

// Stock

func (c *Client) ListStock(ctx context.Context, q listview.ListQuery) (listview.ListResult, error) {
	return c.list(ctx, "/api/v1/crm/stock", q)
}

func (c *Client) StockFetcher() listview.Fetcher {
	return listview.FetcherFunc(c.ListStock)
}

func (c *Client) GetStockStats(ctx context.Context) (models.StockStats, error) {
	var stats models.StockStats
	err := c.detail(ctx, "/api/v1/crm/stock/stats", &stats)
	return stats, err
}

// Agents

func (c *Client) ListAgents(ctx context.Context, q listview.ListQuery) (listview.ListResult, error) {
	return c.list(ctx, "/api/v1/crm/agents", q)
}

func (c *Client) AgentFetcher() listview.Fetcher {
	return listview.FetcherFunc(c.ListAgents)
}

func (c *Client) GetAgent(ctx context.Context, id string) (models.Agent, error) {
	var agent models.Agent
	err := c.detail(ctx, "/api/v1/crm/agents/"+id, &agent)
	return agent, err
}

func (c *Client) GetAgentCommissions(ctx context.Context, id string) ([]models.AgentCommission, error) {
	var commissions []models.AgentCommission
	err := c.detail(ctx, "/api/v1/crm/agents/"+id+"/commissions", &commissions)
	return commissions, err
}

func (c *Client) GetAgentStats(ctx context.Context) (models.AgentStats, error) {
	var stats models.AgentStats
	err := c.detail(ctx, "/api/v1/crm/agents/stats", &stats)
	return stats, err
}

// Analytics

func (c *Client) GetMonthlyRevenue(ctx context.Context) ([]models.MonthlyRevenuePoint, error) {
	var points []models.MonthlyRevenuePoint
	err := c.detail(ctx, "/api/v1/crm/analytics/monthly-revenue", &points)
	return points, err
}

func (c *Client) GetSalesMetrics(ctx context.Context) (models.SalesMetrics, error) {
	var metrics models.SalesMetrics
	err := c.detail(ctx, "/api/v1/crm/analytics/sales-metrics", &metrics)
	return metrics, err
}
