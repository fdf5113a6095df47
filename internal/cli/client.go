package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"carbarn/internal/catalog"
	"carbarn/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Account(ctx context.Context) (game.Account, error) {
	var out game.Account
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/account", nil, &out)
	return out, err
}

func (c *Client) EnsureAccount(ctx context.Context) (game.Account, error) {
	var out game.Account
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/account", nil, &out)
	return out, err
}

func (c *Client) ResetAccount(ctx context.Context) (game.Account, error) {
	var out game.Account
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/account/reset", nil, &out)
	return out, err
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.jsonRequest(ctx, http.MethodDelete, "/v1/account", nil, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, userName, profileImage *string) (game.Account, error) {
	var out game.Account
	body := map[string]any{}
	if userName != nil {
		body["userName"] = *userName
	}
	if profileImage != nil {
		body["profileImage"] = *profileImage
	}
	err := c.jsonRequest(ctx, http.MethodPut, "/v1/account/profile", body, &out)
	return out, err
}

func (c *Client) SetBackground(ctx context.Context, background, backgroundImage *string) (game.Account, error) {
	var out game.Account
	body := map[string]any{}
	if background != nil {
		body["background"] = *background
	}
	if backgroundImage != nil {
		body["backgroundImage"] = *backgroundImage
	}
	err := c.jsonRequest(ctx, http.MethodPut, "/v1/account/background", body, &out)
	return out, err
}

func (c *Client) CatalogCars(ctx context.Context) ([]catalog.Car, error) {
	var out struct {
		Cars []catalog.Car `json:"cars"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog/cars", nil, &out)
	return out.Cars, err
}

func (c *Client) CatalogWarehouses(ctx context.Context) ([]catalog.Warehouse, error) {
	var out struct {
		Warehouses []catalog.Warehouse `json:"warehouses"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog/warehouses", nil, &out)
	return out.Warehouses, err
}

func (c *Client) Garage(ctx context.Context) (game.GarageView, error) {
	var out game.GarageView
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/garage", nil, &out)
	return out, err
}

func (c *Client) BuyCar(ctx context.Context, carID, warehouseID int) (game.Account, error) {
	var out game.Account
	body := map[string]any{}
	if warehouseID > 0 {
		body["warehouseId"] = warehouseID
	}
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/cars/%d/buy", carID), body, &out)
	return out, err
}

func (c *Client) FixCar(ctx context.Context, carID int) (game.Account, error) {
	var out game.Account
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/cars/%d/fix", carID), nil, &out)
	return out, err
}

type SalvageResult struct {
	Account game.Account `json:"account"`
	Part    game.Part    `json:"part"`
}

func (c *Client) SalvageCar(ctx context.Context, carID int) (SalvageResult, error) {
	var out SalvageResult
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/cars/%d/salvage", carID), nil, &out)
	return out, err
}

func (c *Client) SellCar(ctx context.Context, carID int) (game.Account, error) {
	var out game.Account
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/cars/%d/sell", carID), nil, &out)
	return out, err
}

func (c *Client) SellPart(ctx context.Context, partID string) (game.Account, error) {
	var out game.Account
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/parts/"+url.PathEscape(partID)+"/sell", nil, &out)
	return out, err
}

func (c *Client) BuyWarehouse(ctx context.Context, warehouseID int) (game.Account, error) {
	var out game.Account
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/warehouses/%d/buy", warehouseID), nil, &out)
	return out, err
}

type WarehouseSaleResult struct {
	Account game.Account `json:"account"`
	Payout  int          `json:"payout"`
}

func (c *Client) SellWarehouse(ctx context.Context, warehouseID int) (WarehouseSaleResult, error) {
	var out WarehouseSaleResult
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/warehouses/%d/sell", warehouseID), nil, &out)
	return out, err
}

func (c *Client) Offers(ctx context.Context) ([]game.Offer, error) {
	var out struct {
		Offers []game.Offer `json:"offers"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/offers", nil, &out)
	return out.Offers, err
}

func (c *Client) AcceptOffer(ctx context.Context, offerID string) (game.Account, error) {
	var out game.Account
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/offers/accept", map[string]any{"id": offerID}, &out)
	return out, err
}

func (c *Client) DeclineOffer(ctx context.Context, offerID string) error {
	return c.jsonRequest(ctx, http.MethodPost, "/v1/offers/"+url.PathEscape(offerID)+"/decline", nil, nil)
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
