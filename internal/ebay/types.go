package ebay

// ItemSummary represents a single item from the eBay Browse API search response.
type ItemSummary struct {
	ItemID          string           `json:"itemId"`
	ItemGroupHref   string           `json:"itemGroupHref,omitempty"`
	Title           string           `json:"title"`
	Price           *ItemPrice       `json:"price,omitempty"`
	ItemWebURL      string           `json:"itemWebUrl"`
	Image           *ItemImage       `json:"image,omitempty"`
	Seller          *ItemSeller      `json:"seller,omitempty"`
	Condition       string           `json:"condition"`
	ConditionID     string           `json:"conditionId"`
	BuyingOptions   []string         `json:"buyingOptions"`
	ShippingOptions []ShippingOption `json:"shippingOptions,omitempty"`
	ItemEndDate     string           `json:"itemEndDate,omitempty"`
	Categories      []ItemCategory   `json:"categories,omitempty"`
}

// ItemPrice holds eBay price information. Value is a decimal string.
type ItemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// ItemImage holds eBay image information.
type ItemImage struct {
	ImageURL string `json:"imageUrl"`
}

// ItemSeller holds eBay seller information.
type ItemSeller struct {
	Username           string `json:"username"`
	FeedbackScore      int    `json:"feedbackScore"`
	FeedbackPercentage string `json:"feedbackPercentage"`
}

// ShippingOption holds eBay shipping information.
type ShippingOption struct {
	ShippingCost *ItemPrice `json:"shippingCost,omitempty"`
}

// ItemCategory holds eBay category information.
type ItemCategory struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName,omitempty"`
}

// Item is the detailed view returned by getItem.
type Item struct {
	ItemID           string           `json:"itemId"`
	Title            string           `json:"title"`
	ShortDescription string           `json:"shortDescription,omitempty"`
	Description      string           `json:"description,omitempty"`
	Price            *ItemPrice       `json:"price,omitempty"`
	CategoryPath     string           `json:"categoryPath,omitempty"`
	Condition        string           `json:"condition"`
	ConditionID      string           `json:"conditionId"`
	ItemWebURL       string           `json:"itemWebUrl"`
	Image            *ItemImage       `json:"image,omitempty"`
	AdditionalImages []ItemImage      `json:"additionalImages,omitempty"`
	Seller           *ItemSeller      `json:"seller,omitempty"`
	Brand            string           `json:"brand,omitempty"`
	EPID             string           `json:"epid,omitempty"`
	LocalizedAspects []ItemAspect     `json:"localizedAspects,omitempty"`
	EstimatedAvail   []Availability   `json:"estimatedAvailabilities,omitempty"`
	ShippingOptions  []ShippingOption `json:"shippingOptions,omitempty"`
	BuyingOptions    []string         `json:"buyingOptions,omitempty"`
	PrimaryItemGroup *ItemGroupRef    `json:"primaryItemGroup,omitempty"`
}

// ItemAspect is a name/value item specific such as "Card Name: Charizard".
type ItemAspect struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Availability describes how many units of an item are available.
type Availability struct {
	AvailabilityStatus string `json:"estimatedAvailabilityStatus"`
	AvailableQuantity  int    `json:"estimatedAvailableQuantity"`
	SoldQuantity       int    `json:"estimatedSoldQuantity"`
}

// ItemGroupRef points at the item group a variation belongs to.
type ItemGroupRef struct {
	ItemGroupID   string `json:"itemGroupId"`
	ItemGroupType string `json:"itemGroupType"`
	ItemGroupHref string `json:"itemGroupHref"`
}

// ItemGroup is the response of getItemsByItemGroup.
type ItemGroup struct {
	Items              []Item              `json:"items"`
	CommonDescriptions []CommonDescription `json:"commonDescriptions,omitempty"`
}

// CommonDescription is a description shared by several items in a group.
type CommonDescription struct {
	Description string   `json:"description"`
	ItemIDs     []string `json:"itemIds"`
}

// ProductSummary is a single catalog product search result.
type ProductSummary struct {
	EPID        string     `json:"epid"`
	Title       string     `json:"title"`
	GTIN        []string   `json:"gtin,omitempty"`
	MPN         []string   `json:"mpn,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	Image       *ItemImage `json:"image,omitempty"`
	ProductHref string     `json:"productHref,omitempty"`
}

// Product is a catalog product returned by getProduct.
type Product struct {
	EPID          string          `json:"epid"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	GTIN          []string        `json:"gtin,omitempty"`
	MPN           []string        `json:"mpn,omitempty"`
	Image         *ItemImage      `json:"image,omitempty"`
	Aspects       []ProductAspect `json:"aspects,omitempty"`
	ProductWebURL string          `json:"productWebUrl,omitempty"`
}

// ProductAspect is a catalog product attribute with its values.
type ProductAspect struct {
	LocalizedName   string   `json:"localizedName"`
	LocalizedValues []string `json:"localizedValues"`
}
