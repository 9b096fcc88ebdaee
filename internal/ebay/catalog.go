package ebay

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type productSearchAPIResponse struct {
	ProductSummaries []ProductSummary `json:"productSummaries"`
	Total            int              `json:"total"`
	Offset           int              `json:"offset"`
	Limit            int              `json:"limit"`
	Next             string           `json:"next"`
}

// ProductSearchResponse holds the results of a catalog product search.
type ProductSearchResponse struct {
	Products []ProductSummary
	Total    int
	Offset   int
	Limit    int
	HasMore  bool
}

// SearchProducts queries the Catalog API product_summary/search endpoint.
func (c *Client) SearchProducts(
	ctx context.Context,
	req ProductSearchRequest,
) (*ProductSearchResponse, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(clampLimit(req.Limit, defaultProductLimit)))
	params.Set("offset", strconv.Itoa(req.Offset))

	if req.Query != "" {
		params.Set("q", req.Query)
	}
	if req.CategoryIDs != "" {
		params.Set("category_ids", req.CategoryIDs)
	}
	if req.GTIN != "" {
		params.Set("gtin", req.GTIN)
	}
	if req.MPN != "" {
		params.Set("mpn", req.MPN)
	}

	u := c.catalogURL + "/product_summary/search?" + params.Encode()

	var apiResp productSearchAPIResponse
	if err := c.do(ctx, "search_products", http.MethodGet, u, nil, &apiResp); err != nil {
		return nil, err
	}

	return &ProductSearchResponse{
		Products: apiResp.ProductSummaries,
		Total:    apiResp.Total,
		Offset:   apiResp.Offset,
		Limit:    apiResp.Limit,
		HasMore:  apiResp.Next != "",
	}, nil
}

// GetProduct returns a catalog product by its eBay product ID (ePID).
func (c *Client) GetProduct(ctx context.Context, epid string) (*Product, error) {
	u := c.catalogURL + "/product/" + url.PathEscape(epid)

	var p Product
	if err := c.do(ctx, "get_product", http.MethodGet, u, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
