package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/xavierca1/lead-management/internal/infra/queue"
)

const leadTag = "lead_management"

// Client mirrors new leads into the Kommo CRM.
type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiToken, baseURL string) *Client {
	return &Client{
		apiToken:   apiToken,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifyLeadCreated finds or creates the contact by phone and opens a CRM
// lead linked to it.
func (c *Client) NotifyLeadCreated(ctx context.Context, leadID int64, lead queue.LeadPayload) error {
	contactID, err := c.findOrCreateContact(ctx, lead)
	if err != nil {
		return fmt.Errorf("kommo contact: %w", err)
	}

	payload := []map[string]any{
		{
			"name": fmt.Sprintf("Lead #%d - %s", leadID, lead.Name),
			"_embedded": map[string]any{
				"tags":     []map[string]any{{"name": leadTag}},
				"contacts": []map[string]any{{"id": contactID}},
			},
		},
	}

	var result leadsResponse
	if err := c.do(ctx, http.MethodPost, "/leads", payload, &result); err != nil {
		return fmt.Errorf("kommo lead: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return fmt.Errorf("kommo lead: empty response")
	}

	slog.InfoContext(ctx, "lead mirrored to kommo", "lead_id", leadID, "kommo_lead_id", result.Embedded.Leads[0].ID)
	return nil
}

func (c *Client) findOrCreateContact(ctx context.Context, lead queue.LeadPayload) (int, error) {
	phone := strconv.FormatInt(lead.Phone, 10)

	var found contactsResponse
	if err := c.do(ctx, http.MethodGet, "/contacts?query="+url.QueryEscape(phone), nil, &found); err != nil {
		return 0, err
	}
	if len(found.Embedded.Contacts) > 0 {
		return found.Embedded.Contacts[0].ID, nil
	}

	payload := []map[string]any{
		{
			"name": lead.Name,
			"custom_fields_values": []map[string]any{
				{
					"field_code": "PHONE",
					"values":     []map[string]any{{"value": phone, "enum_code": "WORK"}},
				},
			},
		},
	}

	var created contactsResponse
	if err := c.do(ctx, http.MethodPost, "/contacts", payload, &created); err != nil {
		return 0, err
	}
	if len(created.Embedded.Contacts) == 0 {
		return 0, fmt.Errorf("contact not created")
	}
	return created.Embedded.Contacts[0].ID, nil
}

// do sends a JSON request. A 204 leaves out untouched, which Kommo uses for
// an empty search.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return fmt.Errorf("%s %s: %d - %s", method, path, resp.StatusCode, string(respBody))
	}
	return json.Unmarshal(respBody, out)
}
