package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tourplan/internal/types"
)

const (
	DefaultBaseURL   = "https://api-ho.headout.com"
	placeholderImage = "/api/placeholder/400/250"
	defaultCurrency  = "USD"
)

// Client reads the experience catalog and inventory endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a Client. A nil limiter disables request pacing.
func NewClient(baseURL string, httpClient *http.Client, limiter *rate.Limiter) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, limiter: limiter}
}

type apiTour struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Duration      int64  `json:"duration"`
	InventoryType string `json:"inventoryType"`
	MinPax        int    `json:"minPax"`
	MaxPax        int    `json:"maxPax"`
}

type apiVariant struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	VariantInfo  string `json:"variantInfo"`
	ListingPrice *struct {
		CurrencyCode  string  `json:"currencyCode"`
		OriginalPrice float64 `json:"originalPrice"`
		FinalPrice    float64 `json:"finalPrice"`
	} `json:"listingPrice"`
	Tours []apiTour `json:"tours"`
}

type apiExperience struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	City        *struct {
		DisplayName string `json:"displayName"`
		Country     struct {
			Currency struct {
				Code   string `json:"code"`
				Symbol string `json:"symbol"`
			} `json:"currency"`
		} `json:"country"`
	} `json:"city"`
	ImageUploads []struct {
		URL   string `json:"url"`
		Alt   string `json:"alt"`
		Title string `json:"title"`
	} `json:"imageUploads"`
	Media *struct {
		ProductImages []struct {
			URL         string `json:"url"`
			AltText     string `json:"altText"`
			Description string `json:"description"`
		} `json:"productImages"`
	} `json:"media"`
	Variants []apiVariant `json:"variants"`
}

type apiInventory struct {
	Availabilities []AvailabilityWindow `json:"availabilities"`
	CurrencyCode   string               `json:"currencyCode"`
}

// GetExperience fetches one experience. Inventory is not populated.
func (c *Client) GetExperience(ctx context.Context, id int64) (*Entry, error) {
	var raw apiExperience
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/v6/tour-groups/%d", c.baseURL, id), &raw); err != nil {
		return nil, fmt.Errorf("experience %d: %w", id, err)
	}
	return toEntry(raw), nil
}

// GetInventory fetches the availability windows of a variant between from and to inclusive.
func (c *Client) GetInventory(ctx context.Context, experienceID, variantID int64, from, to types.Date) (InventoryIndex, error) {
	q := url.Values{}
	q.Set("variantId", fmt.Sprint(variantID))
	q.Set("from-date", from.String())
	q.Set("to-date", to.String())
	u := fmt.Sprintf("%s/api/v7/tour-groups/%d/inventories/?%s", c.baseURL, experienceID, q.Encode())

	var raw apiInventory
	if err := c.getJSON(ctx, u, &raw); err != nil {
		return nil, fmt.Errorf("inventory for variant %d: %w", variantID, err)
	}
	return BuildInventoryIndex(raw.Availabilities), nil
}

func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func toEntry(raw apiExperience) *Entry {
	e := &Entry{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Currency:    defaultCurrency,
		Image:       placeholderImage,
	}
	if e.Description == "" {
		e.Description = fmt.Sprintf("Visit %s and explore this amazing experience.", raw.Name)
	}
	if raw.City != nil {
		e.City = raw.City.DisplayName
		if code := raw.City.Country.Currency.Code; code != "" {
			e.Currency = code
		}
		e.CurrencySymbol = raw.City.Country.Currency.Symbol
	}

	for _, img := range raw.ImageUploads {
		e.Images = append(e.Images, Image{URL: img.URL, Alt: img.Alt, Description: img.Title})
	}
	if raw.Media != nil {
		for _, img := range raw.Media.ProductImages {
			e.Images = append(e.Images, Image{URL: img.URL, Alt: img.AltText, Description: img.Description})
		}
	}
	if len(e.Images) > 0 && e.Images[0].URL != "" {
		e.Image = e.Images[0].URL
	}

	for _, v := range raw.Variants {
		variant := Variant{ID: v.ID, Name: v.Name, Info: v.VariantInfo, Currency: e.Currency}
		if v.ListingPrice != nil {
			variant.Price = v.ListingPrice.FinalPrice
			variant.OriginalPrice = v.ListingPrice.OriginalPrice
			if v.ListingPrice.CurrencyCode != "" {
				variant.Currency = v.ListingPrice.CurrencyCode
			}
		}
		for _, t := range v.Tours {
			variant.Tours = append(variant.Tours, Tour(t))
		}
		e.Variants = append(e.Variants, variant)
	}
	if len(e.Variants) > 0 {
		e.SelectedVariant = e.Variants[0].ID
	}
	return e
}
