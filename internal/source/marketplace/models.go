package marketplace

// searchResponse mirrors the scan-mode search endpoint.
type searchResponse struct {
	Results  []string `json:"results"`
	ScrollID *string  `json:"scroll_id"`
	Paging   paging   `json:"paging"`
}

type paging struct {
	Total int `json:"total"`
}

// multigetEntry is one element of the batch item-detail response. Code
// carries the per-item HTTP status; a non-200 entry failed without failing
// the batch.
type multigetEntry struct {
	Code int      `json:"code"`
	Body itemBody `json:"body"`
}

type itemBody struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	SellerCustomField *string     `json:"seller_custom_field"`
	AvailableQuantity int         `json:"available_quantity"`
	Price             float64     `json:"price"`
	Status            string      `json:"status"`
	Permalink         string      `json:"permalink"`
	CategoryID        string      `json:"category_id"`
	ListingTypeID     string      `json:"listing_type_id"`
	Health            float64     `json:"health"`
	Attributes        []attribute `json:"attributes"`
}

type attribute struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ValueName *string `json:"value_name"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
